// Package generate produces UUIDs, passwords, passphrases and placeholder
// text, and computes digests of text.
//
// Generators draw randomness from an io.Reader so callers can substitute a
// deterministic source; the zero Generator uses crypto/rand.
package generate

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pstuifzand/go-textutils/transform/operr"
)

// Generator holds the randomness source and the clock
type Generator struct {
	Rand io.Reader
	Now  func() time.Time
}

// New returns a generator reading from r, or from crypto/rand when r is nil
func New(r io.Reader) *Generator {
	return &Generator{Rand: r}
}

func (g *Generator) source() io.Reader {
	if g == nil || g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

// intn returns a uniform integer in [0, n)
func (g *Generator) intn(op string, n int) (int, error) {
	v, err := rand.Int(g.source(), big.NewInt(int64(n)))
	if err != nil {
		return 0, operr.Wrap(operr.UnsupportedOperation, op, "Random source failed: "+err.Error(), err)
	}
	return int(v.Int64()), nil
}

func checkCount(op string, count int) error {
	if count < 1 || count > 100 {
		return operr.Config(op, "Count must be between 1 and 100, got %d.", count)
	}
	return nil
}

// UUIDs returns count random version 4 UUIDs, one per line
func (g *Generator) UUIDs(count int) (string, error) {
	if err := checkCount("uuid-generator", count); err != nil {
		return "", err
	}
	ids := make([]string, count)
	for i := range ids {
		id, err := uuid.NewRandomFromReader(g.source())
		if err != nil {
			return "", operr.Wrap(operr.UnsupportedOperation, "uuid-generator", "Random source failed: "+err.Error(), err)
		}
		ids[i] = id.String()
	}
	return strings.Join(ids, "\n"), nil
}
