package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracle_Complete_RejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	o := gemini.NewOracle(nil, sitesearch.ModelFlash) // nil client ok for this test

	_, err := o.Complete(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.NotNil(t, config.Temperature)
	assert.Equal(t, float32(0.4), *config.Temperature)
}
