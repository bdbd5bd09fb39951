// Package anchor carries over the teacher's Anchor-style discriminator
// helper (pkg/anchor/anchor.go), unchanged. FRT's own wire format uses the
// 1-byte tag of spec §6.1, not this 8-byte hash; GetDiscriminator is kept
// for the label GetVersion returns ahead of its version triple, which the
// demo entrypoint logs, matching the convention every Anchor-based
// program in the pack (Raydium CPMM's swapBaseInput, etc.) uses for its own
// instructions.
package anchor

import (
	"crypto/sha256"
	"fmt"
)

// GetDiscriminator returns sha256("namespace:name")[:8], the Anchor
// instruction-discriminator recipe.
func GetDiscriminator(namespace string, name string) []byte {
	preimage := fmt.Sprintf("%s:%s", namespace, name)
	hash := sha256.Sum256([]byte(preimage))
	return hash[:8]
}
