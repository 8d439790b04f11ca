package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		wantErr  bool
	}{
		{"urgent", PriorityUrgent, false},
		{"HIGH", PriorityHigh, false},
		{" medium ", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"", PriorityUnset, false},
		{"critical", PriorityUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, PriorityMedium.Rank(), PriorityUnset.Rank())
}

func TestPriority_RaiseTo(t *testing.T) {
	assert.Equal(t, PriorityHigh, PriorityLow.RaiseTo(PriorityHigh))
	assert.Equal(t, PriorityHigh, PriorityMedium.RaiseTo(PriorityHigh))
	assert.Equal(t, PriorityHigh, PriorityUnset.RaiseTo(PriorityHigh))
	assert.Equal(t, PriorityUrgent, PriorityUrgent.RaiseTo(PriorityHigh))
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("Hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)
	assert.Equal(t, 2, d.Level())

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.False(t, d.IsKnown())
	assert.Equal(t, 1, d.Level())

	_, err = ParseDifficulty("brutal")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("exam")
	require.NoError(t, err)
	assert.Equal(t, CategoryExam, c)
	assert.Equal(t, "exam", c.String())

	_, err = ParseCategory("quiz")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
