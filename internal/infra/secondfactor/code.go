// Package secondfactor keeps the short-lived numeric codes used for
// two-factor sign-in and password reset.
package secondfactor

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"vigil/internal/errors"
)

const (
	codeMin   = 100000
	codeRange = 900000 // codes span 100000..999999
)

// generateCode returns a uniformly distributed six-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random code")
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
