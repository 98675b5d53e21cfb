package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a random numeric code of exactly length digits with
// no leading zero.
func GenerateOTP(length int) (string, error) {
	if length < 1 || length > 18 {
		return "", fmt.Errorf("otp length %d out of range", length)
	}
	lo := pow10(length - 1)
	span := pow10(length) - lo
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", lo+n.Int64()), nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// VerificationMessage is the SMS body carrying a confirmation code.
func VerificationMessage(code string) string {
	return fmt.Sprintf("Welcome to Field Booking Service App! Your confirmation code is %s", code)
}
