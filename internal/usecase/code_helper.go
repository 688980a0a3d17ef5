package usecase

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// generateActivationCode creates a secure, random, human-readable code.
// Format: XXXX-XXXX-XXXX
func generateActivationCode() (string, error) {
	// A character set that avoids ambiguous characters like O/0, I/1, l.
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLength = 12

	buffer := make([]byte, codeLength)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}

	for i := 0; i < codeLength; i++ {
		buffer[i] = chars[int(buffer[i])%len(chars)]
	}

	return string(buffer[0:4]) + "-" + string(buffer[4:8]) + "-" + string(buffer[8:12]), nil
}

// generateVerificationCode draws a uniform 6-digit code in [100000, 999999].
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
