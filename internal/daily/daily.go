// internal/daily/daily.go
//
// Daily challenge secret.
// Every player gets the same secret code on the same UTC day for a given
// board dimension, derived from HMAC-SHA256(salt, date|dimension|dot).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Secret returns the deterministic secret code of the day for cfg.
func Secret(date time.Time, salt string, cfg game.Config) game.Combination {
	if cfg.Colors <= 0 || cfg.Dots <= 0 {
		return game.Combination{}
	}
	dk := DateKey(date) + "|" + cfg.Dimension()
	dots := make([]int, cfg.Dots)
	for i := range dots {
		h := hmac.New(sha256.New, []byte(salt))
		h.Write([]byte(dk + "|" + strconv.Itoa(i)))
		sum := h.Sum(nil)
		// take first 8 bytes to uint64 for modulus distribution
		n := binary.BigEndian.Uint64(sum[:8])
		dots[i] = int(n%uint64(cfg.Colors)) + 1
	}
	return game.CombinationOf(dots...)
}
