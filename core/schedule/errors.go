package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a request names no course.
var ErrEmptyInput = errors.New("select at least one course")

// ErrNoCandidates is returned when a requested course has no section left
// after the capacity and campus filters. It is wrapped by NoCandidatesError.
var ErrNoCandidates = errors.New("no candidate sections")

// ErrNoValidCombinations is returned when every candidate combination either
// overlaps or falls outside the daytime window.
var ErrNoValidCombinations = errors.New("no valid combinations found")

// ErrMalformedInput is returned when the offering data is missing columns or
// holds unparsable values. It is wrapped by MalformedInputError.
var ErrMalformedInput = errors.New("malformed input")

// ErrSearchSpaceTooLarge is returned when the product of candidate sections
// exceeds the configured ceiling. It is wrapped by SearchSpaceError.
var ErrSearchSpaceTooLarge = errors.New("search space too large")

// NoCandidatesError names the course that was filtered to nothing.
type NoCandidatesError struct {
	Course string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("course %q: %v", e.Course, ErrNoCandidates)
}

func (e *NoCandidatesError) Unwrap() error { return ErrNoCandidates }

// MalformedInputError lists the offending columns and, when known, the
// 1-based source row.
type MalformedInputError struct {
	Source  string
	Columns []string
	Row     int
	Reason  string
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString(ErrMalformedInput.Error())
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if len(e.Columns) > 0 {
		fmt.Fprintf(&b, ": columns %s", strings.Join(e.Columns, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// SearchSpaceError reports the size that tripped the ceiling.
type SearchSpaceError struct {
	Size  uint64
	Limit uint64
}

func (e *SearchSpaceError) Error() string {
	return fmt.Sprintf("%v: %d candidate combinations exceed limit %d", ErrSearchSpaceTooLarge, e.Size, e.Limit)
}

func (e *SearchSpaceError) Unwrap() error { return ErrSearchSpaceTooLarge }
