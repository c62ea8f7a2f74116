// Package id generates prefixed record ids such as "q-12" or "ans-V1StGXR8_Z5jdHi6B-myT".
package id

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Scheme names an id generation strategy.
type Scheme string

// Supported schemes.
const (
	// SchemeSequential numbers records per collection: q-1, q-2, ...
	SchemeSequential Scheme = "sequential"
	// SchemeNanoID appends a 21 character NanoID to the prefix.
	SchemeNanoID Scheme = "nanoid"
	// SchemeUUID appends a random (v4) UUID to the prefix.
	SchemeUUID Scheme = "uuid"
)

// ParseScheme validates a scheme name. Empty selects SchemeSequential.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeSequential:
		return SchemeSequential, nil
	case SchemeNanoID:
		return SchemeNanoID, nil
	case SchemeUUID:
		return SchemeUUID, nil
	default:
		return "", fmt.Errorf("unknown id scheme %q (must be sequential, nanoid, or uuid)", s)
	}
}

// Source hands out ids for a single collection.
type Source interface {
	Next() string
}

// NewSource returns a Source for prefix using the given scheme.
// existing is the number of records already in the collection; sequential
// numbering continues after it.
func NewSource(scheme Scheme, prefix string, existing int) Source {
	switch scheme {
	case SchemeNanoID:
		return funcSource(func() string { return MustGenerate(prefix) })
	case SchemeUUID:
		return funcSource(func() string { return prefix + "-" + uuid.NewString() })
	default:
		return NewSequence(prefix, existing)
	}
}

type funcSource func() string

func (f funcSource) Next() string { return f() }

// Sequence is a monotonic per-collection counter. Safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence creates a sequence whose first id is prefix-(start+1).
func NewSequence(prefix string, start int) *Sequence {
	s := &Sequence{prefix: prefix}
	s.n.Store(int64(start))
	return s
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "q-V1StGXR8_Z5jdHi6B-myT")
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
