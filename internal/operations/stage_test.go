package operations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepState_Lifecycle(t *testing.T) {
	st := NewStepState("clean", "Clean dataset")
	assert.Equal(t, StepStatusPending, st.Status)
	assert.Zero(t, st.Duration())

	st.Start()
	assert.Equal(t, StepStatusActive, st.Status)
	assert.NotNil(t, st.StartTime)

	time.Sleep(time.Millisecond)
	st.Complete()
	assert.Equal(t, StepStatusCompleted, st.Status)
	assert.Positive(t, st.Duration())
}

func TestStepState_FailAndSkip(t *testing.T) {
	failed := NewStepState("fetch", "Fetch")
	failed.Start()
	failed.Fail(errors.New("boom"))
	assert.Equal(t, StepStatusFailed, failed.Status)
	assert.EqualError(t, failed.Error, "boom")

	skipped := NewStepState("visualize", "Visualize")
	skipped.Skip("disabled")
	assert.Equal(t, StepStatusSkipped, skipped.Status)
	assert.Equal(t, "disabled", skipped.Message)
	assert.Zero(t, skipped.Duration())
}
