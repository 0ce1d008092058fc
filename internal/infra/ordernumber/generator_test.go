package ordernumber

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Next_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^COD\d+$`)
	gen := New()

	for range 20 {
		assert.Regexp(t, pattern, gen.Next())
	}
}

func TestGenerator_Next_Deterministic(t *testing.T) {
	gen := &Generator{
		now:  func() time.Time { return time.UnixMilli(1700000000123) },
		rand: func(int) int { return 42 },
	}

	assert.Equal(t, "COD17000000001230042", gen.Next())
}

func TestGenerator_Next_SameMillisecondDiffers(t *testing.T) {
	calls := 0
	gen := &Generator{
		now: func() time.Time { return time.UnixMilli(1700000000123) },
		rand: func(int) int {
			calls++

			return calls
		},
	}

	assert.NotEqual(t, gen.Next(), gen.Next())
}
