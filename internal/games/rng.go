package games

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
	"strconv"
)

// DeriveSeed maps (serverSeed, clientSeed, nonce) to a deterministic RNG seed.
// The returned proof is the full HMAC digest so a player can verify the round
// once the server seed is revealed.
func DeriveSeed(serverSeed, clientSeed string, nonce int64) (int64, string) {
	h := hmac.New(sha256.New, []byte(serverSeed))
	h.Write([]byte(clientSeed + ":" + strconv.FormatInt(nonce, 10)))

	sum := h.Sum(nil)
	seed := int64(binary.BigEndian.Uint64(sum[:8]) >> 1)

	return seed, hex.EncodeToString(sum)
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
