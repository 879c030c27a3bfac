package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleSentences(t *testing.T) {
	t.Run("two fragments one sentence", func(t *testing.T) {
		got := AssembleSentences([]Fragment{
			{Text: "Hello", Start: 0, Duration: 2},
			{Text: "world.", Start: 2, Duration: 1},
		})
		require.Len(t, got, 1)
		assert.Equal(t, Sentence{Text: "Hello world. ", Start: 0, Duration: 3}, got[0])
	})

	t.Run("line breaks become spaces", func(t *testing.T) {
		got := AssembleSentences([]Fragment{{Text: "Hello\nthere.", Start: 0, Duration: 1}})
		require.Len(t, got, 1)
		assert.Equal(t, "Hello there. ", got[0].Text)
	})

	t.Run("all terminal marks close", func(t *testing.T) {
		got := AssembleSentences([]Fragment{
			{Text: "Stop.", Start: 0, Duration: 1},
			{Text: "Why?", Start: 1, Duration: 1},
			{Text: "Wow!", Start: 2, Duration: 1},
		})
		assert.Len(t, got, 3)
	})

	t.Run("unterminated tail dropped", func(t *testing.T) {
		got := AssembleSentences([]Fragment{
			{Text: "Done.", Start: 0, Duration: 1},
			{Text: "and then", Start: 1, Duration: 1},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Done. ", got[0].Text)
	})

	t.Run("duration rounded to hundredths", func(t *testing.T) {
		got := AssembleSentences([]Fragment{{Text: "x.", Start: 1.234, Duration: 1}})
		require.Len(t, got, 1)
		assert.InDelta(t, 2.23, got[0].Duration, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, AssembleSentences(nil))
	})
}

func TestAssembleSentencesRounding(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.12},
		{1.115, 1.11},
		{2.675, 2.67},
		{12.125, 12.12},
		{0.375, 0.38},
		{3.14159, 3.14},
	}
	for _, tt := range tests {
		got := AssembleSentences([]Fragment{{Text: "a.", Start: 0, Duration: tt.in}})
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0].Duration, "duration %v", tt.in)
	}
}

func TestAssembleSentencesContiguity(t *testing.T) {
	got := AssembleSentences([]Fragment{
		{Text: "A.", Start: 0, Duration: 1},
		{Text: "B", Start: 1, Duration: 2},
		{Text: "c!", Start: 3, Duration: 1.5},
		{Text: "d?", Start: 4.5, Duration: 0.5},
	})
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0].Start)
	for i := 0; i+1 < len(got); i++ {
		assert.Equal(t, got[i].Duration, got[i+1].Start, "sentence %d", i+1)
	}
	assert.Equal(t, []float64{1, 3.5, 1.5}, []float64{got[0].Duration, got[1].Duration, got[2].Duration})
}
