// Package id generates the identifiers the companion mints locally.
//
// Identifiers are prefixed ULIDs so they sort by creation time and read
// clearly in logs:
//   - call_*: correlation id of a bridge request frame
//   - undo_*: token naming a single-use undo offer
//   - dlg_*: pending dialog request
//   - trc_*, spn_*: development host trace and span ids
//
// Entities owned by the host (apps, profiles) carry host-assigned ids and
// never pass through this package.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// CallID correlates a bridge request with its reply
type CallID string

// UndoToken names a pending undo offer
type UndoToken string

// DialogID names a pending dialog request
type DialogID string

const (
	CallPrefix   = "call"
	UndoPrefix   = "undo"
	DialogPrefix = "dlg"
	TracePrefix  = "trc"
	SpanPrefix   = "spn"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// entropy, so ids minted within the same millisecond still sort in order.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy, now: time.Now}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewCallID generates a bridge call id
func NewCallID() CallID {
	return CallID(Default().GenerateWithPrefix(CallPrefix))
}

// NewUndoToken generates an undo token
func NewUndoToken() UndoToken {
	return UndoToken(Default().GenerateWithPrefix(UndoPrefix))
}

// NewDialogID generates a dialog request id
func NewDialogID() DialogID {
	return DialogID(Default().GenerateWithPrefix(DialogPrefix))
}

func (id CallID) String() string    { return string(id) }
func (id UndoToken) String() string { return string(id) }
func (id DialogID) String() string  { return string(id) }

// Valid reports whether s is prefix followed by a well-formed ULID.
func Valid(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	if !ok {
		return false
	}
	_, err := ulid.Parse(rest)
	return err == nil
}

// Timestamp extracts the creation time of a prefixed id
func Timestamp(s string) (time.Time, error) {
	i := strings.LastIndexByte(s, '_')
	parsed, err := ulid.Parse(s[i+1:])
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
