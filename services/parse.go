package services

import (
	"math"
	"strconv"
	"strings"
)

// The UI hands over raw form-field strings; they are parsed here, never in
// handlers, so malformed input follows the same rejection path as any other
// failed precondition.

// ParseAmount parses a raw amount field. Anything that is not a finite number
// is rejected: strconv accepts "NaN" and "Inf" spellings without error, and
// neither may ever reach a ledger. Sign checks are left to the individual
// operations.
func ParseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrRejected
	}
	return v, nil
}

// ParsePIN parses a raw PIN field into its numeric form.
func ParsePIN(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrAuthFailed
	}
	return v, nil
}
