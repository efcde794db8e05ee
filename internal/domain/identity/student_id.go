package identity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StudentIDGenerator produces unique, sortable student identifiers of the
// form YYYY-NNN, where NNN is a per-year sequence starting at 001. The
// sequence is derived from persisted identifiers and never reuses a value;
// identifiers of deleted students stay burned.
//
// The generator itself never fails on a sequence clash. Two concurrent
// registrations can both observe the same max and produce the same
// identifier; callers rely on the unique constraint on users.student_id
// and retry (see the enrollment services).
type StudentIDGenerator struct {
	source StudentSequenceSource
	now    func() time.Time
}

// StudentSequenceSource provides the persisted sequence numbers for a year.
// UserRepository satisfies it.
type StudentSequenceSource interface {
	StudentSequencesForYear(ctx context.Context, yearPrefix string) ([]int, error)
}

// NewStudentIDGenerator creates a generator backed by the user repository
func NewStudentIDGenerator(source StudentSequenceSource) *StudentIDGenerator {
	return &StudentIDGenerator{source: source, now: time.Now}
}

// Next returns the next identifier for the current year.
//
// The highest existing sequence is taken as the numeric max over every
// identifier with the year prefix, not the lexicographically last one:
// once a year's sequence passes 999 the suffix grows to four digits and
// "2025-1000" sorts before "2025-999" as a string.
func (g *StudentIDGenerator) Next(ctx context.Context) (string, error) {
	year := g.now().Format("2006")

	sequences, err := g.source.StudentSequencesForYear(ctx, year+"-")
	if err != nil {
		return "", err
	}

	max := 0
	for _, seq := range sequences {
		if seq > max {
			max = seq
		}
	}

	return fmt.Sprintf("%s-%03d", year, max+1), nil
}

// ParseSequence extracts the numeric suffix of a student identifier.
// Returns 0 for identifiers that do not carry a numeric suffix.
func ParseSequence(studentID string) int {
	_, suffix, found := strings.Cut(studentID, "-")
	if !found {
		return 0
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return seq
}
