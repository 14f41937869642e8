package account

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/amirasaad/corebank/pkg/domain"
)

// NumberLength is the length of an account number: a two digit type prefix
// followed by twelve digits.
const NumberLength = 14

var serialSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(NumberLength-2), nil)

// Number is the external identifier of an account, e.g. "20" + "000123456789".
type Number string

// ParseNumber validates s as an account number.
func ParseNumber(s string) (Number, error) {
	if len(s) != NumberLength {
		return "", domain.InvalidInputf("account number must be %d digits, got %q", NumberLength, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", domain.InvalidInputf("account number must be numeric, got %q", s)
		}
	}
	n := Number(s)
	if _, ok := n.lookupType(); !ok {
		return "", domain.InvalidInputf("account number %q has unknown type prefix %q", s, s[:2])
	}
	return n, nil
}

// GenerateNumber returns a random account number for t. Uniqueness is the
// caller's concern.
func GenerateNumber(t Type) (Number, error) {
	if !t.IsValid() {
		return "", domain.InvalidInputf("unknown account type %q", t)
	}
	serial, err := rand.Int(rand.Reader, serialSpace)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	return Number(fmt.Sprintf("%s%012d", t.Prefix(), serial)), nil
}

// Type returns the account type encoded in the prefix, or "" when unknown.
func (n Number) Type() Type {
	t, _ := n.lookupType()
	return t
}

func (n Number) lookupType() (Type, bool) {
	if len(n) < 2 {
		return "", false
	}
	for t, p := range typePrefixes {
		if string(n[:2]) == p {
			return t, true
		}
	}
	return "", false
}

func (n Number) String() string { return string(n) }
