package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSequenceSource implements StudentSequenceSource for testing
type stubSequenceSource struct {
	sequences map[string][]int
	err       error
	lastQuery string
}

func (s *stubSequenceSource) StudentSequencesForYear(_ context.Context, yearPrefix string) ([]int, error) {
	s.lastQuery = yearPrefix
	if s.err != nil {
		return nil, s.err
	}
	return s.sequences[yearPrefix], nil
}

func newTestGenerator(source *stubSequenceSource, year int) *StudentIDGenerator {
	gen := NewStudentIDGenerator(source)
	gen.now = func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return gen
}

func TestStudentIDGenerator_FirstOfYear(t *testing.T) {
	source := &stubSequenceSource{sequences: map[string][]int{}}
	gen := newTestGenerator(source, 2025)

	id, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-001", id)
	assert.Equal(t, "2025-", source.lastQuery)
}

func TestStudentIDGenerator_Increments(t *testing.T) {
	source := &stubSequenceSource{sequences: map[string][]int{
		"2025-": {1, 2},
	}}
	gen := newTestGenerator(source, 2025)

	id, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-003", id)
}

func TestStudentIDGenerator_NumericMaxNotLexicographic(t *testing.T) {
	// "2025-999" sorts after "2025-1000" lexicographically; the generator
	// must take the numeric max anyway.
	source := &stubSequenceSource{sequences: map[string][]int{
		"2025-": {998, 999, 1000},
	}}
	gen := newTestGenerator(source, 2025)

	id, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-1001", id)
	assert.Regexp(t, `^\d{4}-\d{3,}$`, id)
}

func TestStudentIDGenerator_PaddingGrowsPast999(t *testing.T) {
	source := &stubSequenceSource{sequences: map[string][]int{
		"2025-": {999},
	}}
	gen := newTestGenerator(source, 2025)

	id, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-1000", id)
}

func TestStudentIDGenerator_MonotonicNoGaps(t *testing.T) {
	source := &stubSequenceSource{sequences: map[string][]int{"2025-": {}}}
	gen := newTestGenerator(source, 2025)

	for i := 1; i <= 25; i++ {
		id, err := gen.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("2025-%03d", i), id)
		assert.Regexp(t, `^\d{4}-\d{3,}$`, id)

		// Simulate the persistence the enrollment transaction performs
		source.sequences["2025-"] = append(source.sequences["2025-"], i)
	}
}

func TestStudentIDGenerator_YearBoundary(t *testing.T) {
	source := &stubSequenceSource{sequences: map[string][]int{
		"2025-": {412},
		"2026-": {},
	}}

	id, err := newTestGenerator(source, 2025).Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-413", id)

	// A new year restarts at 001 regardless of the previous year's sequence
	id, err = newTestGenerator(source, 2026).Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-001", id)
}

func TestStudentIDGenerator_SourceError(t *testing.T) {
	source := &stubSequenceSource{err: assert.AnError}
	gen := newTestGenerator(source, 2025)

	_, err := gen.Next(context.Background())
	require.Error(t, err)
}

func TestParseSequence(t *testing.T) {
	assert.Equal(t, 1, ParseSequence("2025-001"))
	assert.Equal(t, 1000, ParseSequence("2025-1000"))
	assert.Equal(t, 0, ParseSequence("2025"))
	assert.Equal(t, 0, ParseSequence("2025-abc"))
}
