// Package codes issues the one-time numeric codes used for registration
// email verification and vendor activation.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // codes are uniform over [100000, 999999]
)

// Issue returns a fresh 6-digit code. The draw comes from crypto/rand so
// codes are not guessable from previous ones. Issue never fails: an
// unreadable system randomness source is not a condition worth limping
// through, so it panics instead.
func Issue() string {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		panic(fmt.Sprintf("codes: system randomness unavailable: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin)
}
