package orchestration

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

// ParseCandidate converts one argument into a Candidate. The base is taken
// from the prefix: 0x for hexadecimal, 0o or a leading 0 for octal, 0b for
// binary, decimal otherwise. Out-of-range and malformed input is reported as
// an apperrors.ParseError in the Err field.
func ParseCandidate(index int, arg string) Candidate {
	c := Candidate{Index: index, Arg: arg}
	v, err := strconv.ParseInt(strings.TrimSpace(arg), 0, 64)
	if err != nil {
		c.Err = apperrors.ParseError{Arg: arg, Cause: unwrapNumError(err)}
		return c
	}
	c.Value = v
	return c
}

// ParseCandidates parses every argument in order, keeping rejected ones.
func ParseCandidates(args []string) []Candidate {
	candidates := make([]Candidate, len(args))
	for i, arg := range args {
		candidates[i] = ParseCandidate(i, arg)
	}
	return candidates
}

// unwrapNumError drops the strconv prefix that would repeat the argument.
func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
