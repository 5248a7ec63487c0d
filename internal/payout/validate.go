package payout

import "fmt"

// Validation is the result of the structural date-range check. Errors
// accumulates one message per failing check; it never short-circuits.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateDateRanges checks that both payout windows are well formed:
// both ends present and parsable, and from not after to. It inspects no
// order data. The engine deliberately does not call this itself; a
// caller that skips it just gets a window that matches no orders.
func ValidateDateRanges(orderFrom, orderTo, deliveredFrom, deliveredTo string) Validation {
	var errs []string
	errs = appendWindowErrors(errs, "order date range", orderFrom, orderTo)
	errs = appendWindowErrors(errs, "delivered date range", deliveredFrom, deliveredTo)
	return Validation{Valid: len(errs) == 0, Errors: errs}
}

func appendWindowErrors(errs []string, label, from, to string) []string {
	f := parseDay(from)
	t := parseDay(to)

	if f.IsZero() || t.IsZero() {
		errs = append(errs, fmt.Sprintf("%s requires both a valid from and to date", label))
	}
	if !f.IsZero() && !t.IsZero() && f.After(t) {
		errs = append(errs, fmt.Sprintf("%s: from %s is after to %s", label, from, to))
	}
	return errs
}
