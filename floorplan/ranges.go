package floorplan

import (
	"fmt"
	"regexp"
	"strconv"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// InvalidRangeError reports a from/to token whose numeric component could not
// be extracted. The whole bulk operation carrying the token is aborted.
type InvalidRangeError struct {
	Token string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid room range token %q: no numeric component", e.Token)
}

// ExtractNumber pulls the numeric component out of a room-number token.
// Tokens come from free-text form fields, so "101", "R101" and "room 101"
// all resolve to 101. A token with no digits resolves to 0.
func ExtractNumber(token string) int {
	match := digitsPattern.FindString(token)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// NormalizeRange resolves the inclusive [lo, hi] bound for a bulk room
// update. Entry order does not matter; either token failing to resolve to a
// positive number invalidates the whole range.
func NormalizeRange(fromToken, toToken string) (lo, hi int, err error) {
	from := ExtractNumber(fromToken)
	if from == 0 {
		return 0, 0, &InvalidRangeError{Token: fromToken}
	}
	to := ExtractNumber(toToken)
	if to == 0 {
		return 0, 0, &InvalidRangeError{Token: toToken}
	}
	if from > to {
		from, to = to, from
	}
	return from, to, nil
}
