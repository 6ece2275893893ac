package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MinIDPrefix is the shortest ID prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference: either a 1-based list
// number or a task ID prefix.
type TaskRef struct {
	Number   int    // 1-based position in the full list, 0 if IDPrefix is set
	IDPrefix string // ID prefix, empty if Number is set
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrInvalidTaskRef indicates a reference that is neither a number nor an ID prefix.
	ErrInvalidTaskRef = errors.New("invalid task reference")
)

// ParseTaskRef parses the task reference in args[0].
//
// Parsing rules:
//  1. All digits → list number (as printed by `todo list`)
//  2. At least MinIDPrefix characters without whitespace → ID prefix
//  3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := strings.TrimSpace(args[0])

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
		}
		return TaskRef{Number: num}, nil
	}

	if len(ref) >= MinIDPrefix && !strings.ContainsFunc(ref, unicode.IsSpace) {
		return TaskRef{IDPrefix: strings.ToLower(ref)}, nil
	}

	return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
}

func (r TaskRef) String() string {
	if r.IDPrefix != "" {
		return r.IDPrefix
	}
	return strconv.Itoa(r.Number)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
