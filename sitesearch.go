// Package sitesearch provides a depth-bounded, domain-restricted web crawler
// that builds a deduplicated corpus of page text, plus a retrieval layer over
// that corpus: keyword snippet search and semantic search backed by a language
// model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package sitesearch
