package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashLength is the number of hex characters appended to path-derived
// identities to keep them globally unique.
const hashLength = 8

// stackIdentity derives the manifest identity of a stack at construction.
//
// Inside a stage the identity is "<stage-name>-<local-name>" with no hash:
// stage scoping already guarantees uniqueness, and per-stage deployments
// need stable, human-readable names. Outside any stage the identity is
// derived from the full tree path: a single-component path keeps the plain
// name, deeper paths join their sanitized components and append a short
// hash of the full path so stacks with colliding local names stay distinct.
func stackIdentity(n *Node) string {
	if stages := enclosingStages(n); len(stages) > 0 {
		innermost := stages[len(stages)-1]
		return innermost.StageName() + "-" + n.id
	}

	path := n.Path()
	components := strings.Split(path, "/")
	if len(components) == 1 {
		return n.id
	}

	var b strings.Builder
	for _, c := range components {
		b.WriteString(sanitizeComponent(c))
	}
	return b.String() + pathHash(path)
}

// sanitizeComponent strips characters that are not safe in artifact ids.
func sanitizeComponent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// pathHash returns a short, stable hash of the full tree path.
func pathHash(path string) string {
	sum := sha256.Sum256([]byte(path))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:hashLength]
}
