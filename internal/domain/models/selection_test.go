package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionAddRemove(t *testing.T) {
	s := NewSelection("600519")

	assert.True(t, s.Add("000858"))
	assert.Equal(t, []string{"600519", "000858"}, s.Codes())

	assert.True(t, s.Remove("600519"))
	assert.Equal(t, []string{"000858"}, s.Codes())
	assert.False(t, s.Contains("600519"))
}

func TestSelectionAddIdempotent(t *testing.T) {
	s := NewSelection()

	require.True(t, s.Add("600519"))
	assert.False(t, s.Add("600519"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"600519"}, s.Codes())
}

func TestSelectionRemoveAbsent(t *testing.T) {
	s := NewSelection("600519")

	assert.False(t, s.Remove("000001"))
	assert.Equal(t, []string{"600519"}, s.Codes())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection("600519", "000858")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Codes())
	assert.True(t, s.Add("600519"))
}

func TestSelectionCodesIsCopy(t *testing.T) {
	s := NewSelection("600519", "000858")

	codes := s.Codes()
	codes[0] = "mutated"
	assert.Equal(t, []string{"600519", "000858"}, s.Codes())
}

func TestSelectionDedupOnConstruct(t *testing.T) {
	s := NewSelection("600519", "600519", "000858")

	assert.Equal(t, []string{"600519", "000858"}, s.Codes())
}
