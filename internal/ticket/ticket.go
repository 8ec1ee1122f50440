// Package ticket generates human-readable ticket numbers of the form
// EVT-<TIME>-<RAND>, where TIME is a base-36 uppercase encoding of a
// strictly increasing timestamp and RAND is six uppercase base-36
// characters from a cryptographically strong source.
package ticket

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	prefix       = "EVT"
	randomLength = 6
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Generator issues ticket numbers.  The clock and the random source
// are injected so tests can pin both; production callers should use
// NewGenerator, which wires the system clock and crypto/rand.
//
// The time component is forced to be strictly increasing across calls
// (a CAS loop bumps it past the last issued value when the clock has
// not advanced), so two calls in the same process can never produce
// the same number even if they land on the same nanosecond.  The
// random suffix guards against collisions across processes: 36^6 is
// about 2.2 billion possibilities per timestamp.
type Generator struct {
	now    func() time.Time
	random io.Reader
	last   atomic.Int64 // last issued timestamp in unix nanoseconds
}

// NewGenerator returns a Generator backed by the system clock and
// crypto/rand.
func NewGenerator() *Generator {
	return NewGeneratorWith(time.Now, rand.Reader)
}

// NewGeneratorWith returns a Generator with an explicit clock and
// random source.  Both must be non-nil.
func NewGeneratorWith(now func() time.Time, random io.Reader) *Generator {
	if now == nil || random == nil {
		panic("nil clock or random source passed to NewGeneratorWith")
	}
	return &Generator{now: now, random: random}
}

// Generate returns the next ticket number.  It is safe for concurrent
// use; the only shared state is the atomic high-water mark for the
// time component.
func (g *Generator) Generate() (string, error) {
	ts := g.nextTimestamp()
	suffix, err := g.randomSuffix()
	if err != nil {
		return "", fmt.Errorf("ticket: random suffix: %w", err)
	}
	encoded := strings.ToUpper(strconv.FormatInt(ts, 36))
	return prefix + "-" + encoded + "-" + suffix, nil
}

// nextTimestamp returns the current clock reading, bumped past the
// last issued value when the clock has not advanced (or stepped
// backwards).  The CAS loop makes the sequence strictly increasing
// under concurrency.
func (g *Generator) nextTimestamp() int64 {
	for {
		now := g.now().UnixNano()
		last := g.last.Load()
		if now <= last {
			now = last + 1
		}
		if g.last.CompareAndSwap(last, now) {
			return now
		}
	}
}

// randomSuffix draws randomLength characters from the base-36 alphabet
// using rejection-free uniform sampling via math/big.
func (g *Generator) randomSuffix() (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(randomLength)
	for i := 0; i < randomLength; i++ {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}
