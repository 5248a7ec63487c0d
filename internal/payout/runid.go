package payout

import (
	"fmt"
	"math/rand"
	"time"
)

// Ambiguous characters (0/O, 1/I/L) are left out so run IDs survive
// being read over the phone.
const runIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const runIDSuffixLen = 6

// NewRunID returns an identifier for a payout run: the current date in
// compact form plus a random alphanumeric suffix, e.g.
// "PAY-20240121-X7KQ2M". Collisions are possible in principle but not
// at realistic run frequencies; this is an operational label, not a
// cryptographic token.
func NewRunID() string {
	suffix := make([]byte, runIDSuffixLen)
	for i := range suffix {
		suffix[i] = runIDAlphabet[rand.Intn(len(runIDAlphabet))]
	}
	return fmt.Sprintf("PAY-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
