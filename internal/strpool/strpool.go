// Package strpool interns lexeme text into a single canonical,
// NUL-terminated copy per distinct byte span, backed by an arena.Arena.
// Two Intern calls over equal content return a string that shares the same
// backing array, so downstream comparisons reduce to a pointer check
// (unsafe.StringData equality) instead of a byte-by-byte compare.
package strpool

import (
	"hash/fnv"
	"unsafe"

	"github.com/luat-lang/luat/internal/arena"
)

type entry struct {
	next   *entry
	data   string
	length uint64
}

// Pool is an open-addressing-free chained hash table of interned strings.
// Only the interned bytes are allocated in the owning arena; the bucket
// slice and the chain entries are ordinary Go allocations.
type Pool struct {
	arena    *arena.Arena
	buckets  []*entry
	capacity uint64
}

// New creates a pool with bucketCount buckets. The bucket slice itself is
// ordinary Go memory (a slice of pointers), and so is each chain entry;
// only the interned string bytes live in the arena, so interned text
// survives until the arena is torn down.
func New(a *arena.Arena, bucketCount uint64) *Pool {
	if bucketCount == 0 {
		bucketCount = 1
	}

	return &Pool{
		arena:    a,
		buckets:  make([]*entry, bucketCount),
		capacity: bucketCount,
	}
}

// hashFNV1a hashes a byte span with the 64-bit FNV-1a algorithm, the same
// function the original C string pool used (offset basis
// 0xcbf29ce484222325, prime 0x100000001b3).
func hashFNV1a(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)

	return h.Sum64()
}

// Intern returns a stable, canonical copy of the given bytes. Repeated
// calls with byte-identical content return the exact same string (shared
// backing array): pointer equality implies content equality and vice
// versa.
func (p *Pool) Intern(b []byte) string {
	h := hashFNV1a(b)
	idx := h % p.capacity

	for e := p.buckets[idx]; e != nil; e = e.next {
		if e.length == uint64(len(b)) && e.data == string(b) {
			return e.data
		}
	}

	// One extra byte is reserved past the content; Push zeroes the block,
	// so that byte is the NUL terminator.
	off, ok := p.arena.Push(uintptr(len(b))+1, false)
	if !ok {
		// Arena exhausted: fall back to an ordinary Go allocation so the
		// caller still gets a usable (if unpooled) string rather than a
		// panic. This only happens when the arena was undersized for the
		// source file, a caller-controlled condition.
		s := string(b)
		p.insert(idx, s, uint64(len(b)))

		return s
	}

	raw := p.arena.Bytes(off, uintptr(len(b)))
	copy(raw, b)
	s := unsafe.String(unsafe.SliceData(raw), len(raw))
	p.insert(idx, s, uint64(len(b)))

	return s
}

// InternString is a convenience wrapper over Intern for callers already
// holding a Go string.
func (p *Pool) InternString(s string) string {
	return p.Intern([]byte(s))
}

func (p *Pool) insert(idx uint64, s string, length uint64) {
	e := &entry{data: s, length: length, next: p.buckets[idx]}
	p.buckets[idx] = e
}

// Len reports the number of distinct strings currently interned.
func (p *Pool) Len() int {
	n := 0

	for _, b := range p.buckets {
		for e := b; e != nil; e = e.next {
			n++
		}
	}

	return n
}
