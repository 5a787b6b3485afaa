package focus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunBatchRunsAllEffectsDespitePanicsAndErrors(t *testing.T) {
	var ran []int
	effects := []Effect{
		func() error { ran = append(ran, 1); return nil },
		func() error { panic("boom") },
		func() error { ran = append(ran, 3); return errors.New("widget broke") },
		func() error { ran = append(ran, 4); return nil },
	}
	err := RunBatch(effects)
	assert.Equal(t, []int{1, 3, 4}, ran, "a panicking effect doesn't stop the rest of the batch")
	require := assert.New(t)
	require.Error(err)
	require.Contains(err.Error(), "boom")
	require.Contains(err.Error(), "widget broke")
}

func TestRunBatchReturnsNilWhenNothingFails(t *testing.T) {
	err := RunBatch([]Effect{func() error { return nil }})
	assert.NoError(t, err)
}
