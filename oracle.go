package sitesearch

import "context"

// Oracle is a language model capability invoked with a prompt.
// The search engine uses it for query intent extraction and answer
// synthesis. Oracle failures degrade semantic search to keyword search;
// they never propagate as fatal errors.
type Oracle interface {
	// Complete sends a prompt to the model and returns its text response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Model identifies a supported language model.
type Model string

// Supported models for semantic search.
const (
	ModelFlash        Model = "gemini-2.5-flash"
	ModelPro          Model = "gemini-2.5-pro"
	ModelFlashPreview Model = "gemini-3-flash-preview"
)

// DefaultModel is used when no model is selected.
const DefaultModel = ModelFlash

// Models returns the fixed set of supported model identifiers.
func Models() []Model {
	return []Model{ModelFlash, ModelPro, ModelFlashPreview}
}

// ParseModel validates a model name against the supported set.
// Returns EINVALID for unknown names; an empty name selects DefaultModel.
func ParseModel(name string) (Model, error) {
	if name == "" {
		return DefaultModel, nil
	}
	for _, m := range Models() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", Errorf(EINVALID, "unsupported model %q", name)
}
