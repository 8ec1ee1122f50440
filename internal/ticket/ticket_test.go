package ticket

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var ticketPattern = regexp.MustCompile(`^EVT-[0-9A-Z]+-[0-9A-Z]{6}$`)

// TestGenerateFormat checks the EVT-<TIME>-<RAND> shape.
func TestGenerateFormat(t *testing.T) {
	g := NewGenerator()
	number, err := g.Generate()
	require.NoError(t, err)
	require.Regexp(t, ticketPattern, number)
}

// TestGenerateUniqueness issues a large batch from one generator and
// requires every number to be distinct.
func TestGenerateUniqueness(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]struct{}, 100000)
	for i := 0; i < 100000; i++ {
		number, err := g.Generate()
		require.NoError(t, err)
		_, dup := seen[number]
		require.False(t, dup, "duplicate ticket number %q at iteration %d", number, i)
		seen[number] = struct{}{}
	}
}

// zeroReader always reads zero bytes, pinning the random suffix.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// TestGenerateMonotonicTime pins the clock and the random source and
// checks that the time component still strictly increases, which is
// what makes same-process collisions impossible.
func TestGenerateMonotonicTime(t *testing.T) {
	frozen := time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC)
	g := NewGeneratorWith(func() time.Time { return frozen }, zeroReader{})

	var previous int64
	for i := 0; i < 1000; i++ {
		number, err := g.Generate()
		require.NoError(t, err)

		parts := strings.Split(number, "-")
		require.Len(t, parts, 3)
		require.Equal(t, "EVT", parts[0])
		require.Equal(t, "000000", parts[2], "suffix must come from the injected source")

		ts, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
		require.NoError(t, err)
		require.Greater(t, ts, previous)
		previous = ts
	}
}

// TestGenerateConcurrent checks that concurrent generators sharing one
// instance never collide.
func TestGenerateConcurrent(t *testing.T) {
	g := NewGenerator()
	const workers = 8
	const perWorker = 2000

	results := make(chan string, workers*perWorker)
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				number, err := g.Generate()
				if err != nil {
					results <- "ERR:" + err.Error()
					continue
				}
				results <- number
			}
		}()
	}

	seen := make(map[string]struct{}, workers*perWorker)
	for i := 0; i < workers*perWorker; i++ {
		number := <-results
		require.False(t, strings.HasPrefix(number, "ERR:"), number)
		_, dup := seen[number]
		require.False(t, dup, "duplicate ticket number %q", number)
		seen[number] = struct{}{}
	}
}
