package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; identifiers
		// are not security sensitive, so degrade to zeros.
		return strings.Repeat("0", n*2)
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// NewScreeningID mints a human-readable screening identifier, SCR-XXXXXXXX.
func NewScreeningID() string {
	return "SCR-" + randomHex(4)
}

// NewPatientID mints a placeholder patient identifier for walk-ins.
func NewPatientID() string {
	return "PATIENT-" + randomHex(3)
}
