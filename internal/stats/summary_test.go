package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, Summary{}, s)
		assert.Equal(t, 0.0, s.Mean())
	})

	t.Run("Values", func(t *testing.T) {
		s := Summarize([]float64{0.4, 0.1, 0.9, 0.2})
		assert.Equal(t, 4, s.Count)
		assert.Equal(t, 0.1, s.Min)
		assert.Equal(t, 0.9, s.Max)
		assert.InDelta(t, 0.4, s.Mean(), 1e-9)
	})

	t.Run("Descending", func(t *testing.T) {
		s := Summarize([]float64{3, 2, 1})
		assert.Equal(t, 1.0, s.Min)
		assert.Equal(t, 3.0, s.Max)
	})
}

func TestMerge(t *testing.T) {
	a := Summarize([]float64{0.2, 0.8})
	b := Summarize([]float64{0.4})
	m := a.Merge(b)

	assert.Equal(t, 3, m.Count)
	assert.Equal(t, 0.2, m.Min)
	assert.Equal(t, 0.8, m.Max)
	assert.InDelta(t, 0.4666, m.Mean(), 1e-3)

	assert.Equal(t, a, a.Merge(Summary{}))
	assert.Equal(t, b, Summary{}.Merge(b))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
