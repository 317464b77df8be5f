package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumAndMean(t *testing.T) {
	counts := []int{985, 801, 1349, 1562}

	assert.Equal(t, 4697, Sum(counts))
	assert.InDelta(t, 1174.25, Mean(counts), 1e-9)
	assert.Zero(t, Mean(nil))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   float64
	}{
		{"empty", nil, 0},
		{"odd", []int{5, 1, 3}, 3},
		{"even", []int{4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Median(tt.counts), 1e-9)
		})
	}
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	counts := []int{3, 1, 2}
	Median(counts)
	assert.Equal(t, []int{3, 1, 2}, counts)
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]int{431, 22, 8714, 600})
	assert.Equal(t, 22, min)
	assert.Equal(t, 8714, max)

	min, max = MinMax(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)
}
