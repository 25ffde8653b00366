// Package intern implements the deduplicating string pool: fnv-1a 64-bit
// hash as a fast prefilter, linear scan of same-hash entries for byte-equal
// confirmation, stable 32-bit ids with id 0 reserved for the empty string.
package intern

import (
	"hash/fnv"

	"github.com/dolthub/swiss"
)

// ID is a stable 32-bit identifier for an interned string. ID 0 always
// denotes the empty string.
type ID uint32

const Empty ID = 0

// Strings is a deduplicating string pool. Zero value is not usable; use
// NewStrings.
type Strings struct {
	entries []string
	buckets *swiss.Map[uint64, []ID]
}

func NewStrings() *Strings {
	s := &Strings{
		entries: make([]string, 1, 64),
		buckets: swiss.NewMap[uint64, []ID](64),
	}
	s.entries[0] = ""
	return s
}

func hashOf(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Put interns s, returning its stable id. Put is idempotent: Put(s) called
// twice with byte-equal s returns the same id.
func (p *Strings) Put(s string) ID {
	if len(s) == 0 {
		return Empty
	}
	h := hashOf(s)
	if bucket, ok := p.buckets.Get(h); ok {
		for _, id := range bucket {
			if p.entries[id] == s {
				return id
			}
		}
	}
	id := ID(len(p.entries))
	p.entries = append(p.entries, s)
	bucket, _ := p.buckets.Get(h)
	bucket = append(bucket, id)
	p.buckets.Put(h, bucket)
	return id
}

// Get resolves an id back to its string. Get(Put(s)) == s always holds.
func (p *Strings) Get(id ID) string {
	return p.entries[id]
}

// Len reports how many distinct strings (including the reserved empty
// entry) have been interned.
func (p *Strings) Len() int { return len(p.entries) }
