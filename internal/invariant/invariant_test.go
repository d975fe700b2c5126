//go:build !simdebug

package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckReleaseDoesNotPanic(t *testing.T) {
	assert.True(t, Check(true, "unused"))
	assert.NotPanics(t, func() {
		assert.False(t, Check(false, "health %d below zero", -1))
	})
}

func TestOnceReportsEachKeyOnce(t *testing.T) {
	var o Once

	assert.True(t, o.Report("sfx/jump", "missing sound"))
	assert.False(t, o.Report("sfx/jump", "missing sound"))
	assert.True(t, o.Report("sfx/dash", "missing sound"))
}
