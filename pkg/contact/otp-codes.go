package contact

import (
	"crypto/rand"
	"math/big"
)

const (
	OtpMin = 100000
	OtpMax = 999999
)

// GenerateOTPCode returns a uniformly random 6-digit code in [100000, 999999]
func GenerateOTPCode() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OtpMax-OtpMin+1))
	if err != nil {
		return 0, err
	}
	return OtpMin + n.Int64(), nil
}
