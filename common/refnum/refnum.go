package refnum

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// Prefix identifies the intake program on every reference number.
const Prefix = "SSO-UX"

// Pattern matches well-formed reference numbers, e.g. "SSO-UX-2026-09-01-042".
var Pattern = regexp.MustCompile(`^SSO-UX-\d{4}-\d{2}-\d{2}-\d{3}$`)

// New generates a reference number of the form
// SSO-UX-<ISO date>-<3-digit random>. The random suffix is drawn from
// 001..999 and is NOT checked for uniqueness, so two submissions on the
// same day can collide (roughly 1 in 999 odds per pair). Callers that need
// a guaranteed-unique key must use the record ID instead.
func New(now time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", Prefix, now.UTC().Format("2006-01-02"), rand.IntN(999)+1)
}
