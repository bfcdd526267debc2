package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.Oracle = (*Oracle)(nil)

// Oracle is a mock implementation of sitesearch.Oracle.
type Oracle struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (o *Oracle) Complete(ctx context.Context, prompt string) (string, error) {
	return o.CompleteFn(ctx, prompt)
}
