package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	var ran []string
	r := NewRegistry()

	require.NoError(t, r.Register(newFakeStep("b", &ran, nil)))
	require.NoError(t, r.Register(newFakeStep("a", &ran, nil)))

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"b", "a"}, r.ListIDs(), "registration order is kept")
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("c"))

	step, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "A", step.Name())
}

func TestRegistry_RegisterErrors(t *testing.T) {
	var ran []string
	r := NewRegistry()

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(newFakeStep("", &ran, nil)))

	require.NoError(t, r.Register(newFakeStep("a", &ran, nil)))
	assert.Error(t, r.Register(newFakeStep("a", &ran, nil)))

	_, err := r.Get("missing")
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
}

func TestNewPipelineRegistry(t *testing.T) {
	r, err := NewPipelineRegistry(PipelineDeps{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		StepIDFetch, StepIDAudit, StepIDClean, StepIDDedupe, StepIDAnalyze, StepIDVisualize,
	}, r.ListIDs())
}
