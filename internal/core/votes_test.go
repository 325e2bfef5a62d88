package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampVotes(t *testing.T) {
	tests := []struct {
		name           string
		current, delta int64
		want           int64
	}{
		{name: "increment", current: 100, delta: 1, want: 101},
		{name: "decrement", current: 100, delta: -10, want: 90},
		{name: "clamp at zero", current: 100, delta: -101, want: 0},
		{name: "exactly zero", current: 5, delta: -5, want: 0},
		{name: "zero delta", current: 7, delta: 0, want: 7},
		{name: "from zero downwards", current: 0, delta: -1, want: 0},
		{name: "most negative delta", current: 3, delta: math.MinInt64, want: 0},
		{name: "saturates", current: 10, delta: math.MaxInt64, want: math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampVotes(tt.current, tt.delta))
		})
	}
}
