package strpool

import (
	"testing"
	"unsafe"

	"github.com/luat-lang/luat/internal/arena"
)

func TestInternDeduplicatesByContent(t *testing.T) {
	a := arena.New(4096)
	p := New(a, 16)

	s1 := p.Intern([]byte("hello"))
	s2 := p.Intern([]byte("hello"))

	if s1 != s2 {
		t.Fatalf("expected equal content, got %q and %q", s1, s2)
	}

	if unsafe.StringData(s1) != unsafe.StringData(s2) {
		t.Fatalf("expected identical backing storage for repeated Intern calls")
	}
}

func TestInternDistinguishesDistinctContent(t *testing.T) {
	a := arena.New(4096)
	p := New(a, 16)

	s1 := p.Intern([]byte("foo"))
	s2 := p.Intern([]byte("bar"))

	if s1 == s2 {
		t.Fatalf("distinct content interned to the same string")
	}
}

func TestInternStringWrapper(t *testing.T) {
	a := arena.New(4096)
	p := New(a, 8)

	s1 := p.InternString("abc")
	s2 := p.Intern([]byte("abc"))

	if s1 != s2 {
		t.Fatalf("InternString and Intern disagree on content %q vs %q", s1, s2)
	}
}

func TestLenCountsDistinctEntries(t *testing.T) {
	a := arena.New(4096)
	p := New(a, 8)

	p.Intern([]byte("a"))
	p.Intern([]byte("b"))
	p.Intern([]byte("a"))

	if got := p.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestInternFallsBackWhenArenaExhausted(t *testing.T) {
	a := arena.New(4)
	p := New(a, 4)

	s := p.Intern([]byte("this string is far larger than the arena"))
	if s == "" {
		t.Fatalf("expected a usable fallback string, got empty")
	}
}
