// Package gemini provides a Google Gemini implementation of
// sitesearch.Oracle.
package gemini

import (
	"context"

	"github.com/fwojciec/sitesearch"
	"google.golang.org/genai"
)

// Ensure Oracle implements sitesearch.Oracle at compile time.
var _ sitesearch.Oracle = (*Oracle)(nil)

// Oracle implements sitesearch.Oracle using Google Gemini.
type Oracle struct {
	client *genai.Client
	model  sitesearch.Model
}

// NewOracle creates a new Oracle bound to the given model. An empty
// model selects the default.
func NewOracle(client *genai.Client, model sitesearch.Model) *Oracle {
	if model == "" {
		model = sitesearch.DefaultModel
	}
	return &Oracle{client: client, model: model}
}

// Complete sends a prompt to the model and returns its text response.
func (o *Oracle) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", sitesearch.Errorf(sitesearch.EINVALID, "prompt required")
	}

	result, err := o.client.Models.GenerateContent(ctx, string(o.model),
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sitesearch.Errorf(sitesearch.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a search assistant working over the text of a crawled website. Answer based only on the material provided. If the answer is not in the material, say so.",
			}},
		},
		Temperature: &temp,
	}
}
