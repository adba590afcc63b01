package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSession prefixes session digests. The version suffix allows a
// future change of encoding.
const DomainSession = "parrainage/session/v" + DigestVersion

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SessionDigest fingerprints the pairing set of a session.
//
// The digest covers the session id, the program and every edge (roles,
// names and emails included). Wall-clock time is excluded so a session
// read back from storage hashes to the same value.
func SessionDigest(s Session) (string, error) {
	edges := s.Edges()
	list := make([]any, len(edges))
	for i, e := range edges {
		list[i] = map[string]any{
			"index":  e.PairingIndex,
			"role":   string(e.Role),
			"mentor": participantObject(e.Mentor),
			"mentee": participantObject(e.Mentee),
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"session_id": s.SessionID,
		"program":    s.Program,
		"regime":     string(s.Regime),
		"edges":      list,
	})
	if err != nil {
		return "", fmt.Errorf("SessionDigest: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSession, canonical), nil
}

// MustSessionDigest is like SessionDigest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSessionDigest(s Session) string {
	d, err := SessionDigest(s)
	if err != nil {
		panic(err)
	}
	return d
}

func participantObject(p Participant) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"full_name": p.FullName,
		"email":     p.Email,
	}
}
