package anchoring

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Payload is the canonical report anchored for one screening. Its hash is
// the tamper-evidence fingerprint later readers verify against.
type Payload struct {
	ScreeningID string
	PatientID   string
	RiskScore   string
	Timestamp   string
	Version     string
	Network     string
}

// CanonicalJSON serializes the payload with stable key ordering so the
// same input always produces the same bytes. encoding/json sorts map keys
// lexicographically, which pins the order regardless of struct layout.
func (p Payload) CanonicalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"screeningId": p.ScreeningID,
		"patientId":   p.PatientID,
		"riskScore":   p.RiskScore,
		"timestamp":   p.Timestamp,
		"version":     p.Version,
		"network":     p.Network,
	})
}

// ReportHash is the sha256 hex digest of the canonical serialization.
func (p Payload) ReportHash() (string, error) {
	canonical, err := p.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// DIDFor derives the decentralized identifier string for a report hash.
// "cardano-preprod" yields did:cardano:preprod:<hash prefix>.
func DIDFor(network, reportHash string) string {
	chain := "cardano"
	net := strings.TrimPrefix(network, "cardano-")
	if len(reportHash) > 16 {
		reportHash = reportHash[:16]
	}
	return "did:" + chain + ":" + net + ":" + reportHash
}

// TxHashFor derives the transaction reference recorded for a pinned
// content identifier.
func TxHashFor(cid string) string {
	if len(cid) > 32 {
		cid = cid[:32]
	}
	return "cardano-ipfs-" + cid
}

// SimulatedCID fabricates a deterministic content identifier from the
// canonical payload. Demo-mode degradation only.
func SimulatedCID(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return "Qm" + hex.EncodeToString(sum[:])[:44]
}
