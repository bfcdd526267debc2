package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/crawl"
	"github.com/fwojciec/sitesearch/search"
	"github.com/fwojciec/sitesearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Pages   sitesearch.PageService
	Crawls  sitesearch.CrawlService
	Crawler *crawl.Crawler
	Engine  *search.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to TOML config file" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site and store its pages"`
	Search  SearchCmd  `cmd:"" help:"Keyword search over stored pages"`
	Ask     AskCmd     `cmd:"" help:"Ask a natural language question about stored pages"`
	History HistoryCmd `cmd:"" help:"List past crawl sessions"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Seed URL to crawl"`
	Depth       int           `short:"d" default:"${depth}" help:"Maximum link depth from the seed"`
	Timeout     time.Duration `default:"${timeout}" help:"Per-fetch timeout"`
	Delay       time.Duration `default:"${delay}" help:"Minimum interval between fetches per worker"`
	Concurrency int           `short:"c" default:"${concurrency}" help:"Concurrent fetch limit"`
	MaxPages    int           `help:"Stop after storing this many pages (0 = unlimited)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query         string `arg:"" help:"Substring to search for"`
	CaseSensitive bool   `short:"s" help:"Match case exactly"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Natural language question"`
	Model    string `short:"m" default:"${model}" help:"Language model to use"`
	Limit    int    `short:"l" default:"${limit}" help:"Maximum number of sources"`
	NoAnswer bool   `help:"List ranked sources without synthesizing an answer"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"l" help:"Maximum number of sessions to show (0 = all)"`
}
