package accountcache

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestStoreDistinguishesAbsentFromUnresolved(t *testing.T) {
	s := newStore()
	a, b := key(1), key(2)

	if _, resolved := s.load(a); resolved {
		t.Fatal("empty store must report unresolved")
	}

	s.put(a, nil)
	acc, resolved := s.load(a)
	if !resolved || acc != nil {
		t.Fatalf("confirmed absence lost: resolved=%v acc=%+v", resolved, acc)
	}

	s.put(b, acct(0xB))
	acc, resolved = s.load(b)
	if !resolved || acc == nil || acc.Data[0] != 0xB {
		t.Fatalf("load(b) = %+v resolved=%v", acc, resolved)
	}
}

func TestStoreResetAndSize(t *testing.T) {
	s := newStore()
	for b := byte(0); b < 100; b++ {
		var pk solana.PublicKey
		pk[0] = b
		pk[31] = b
		s.put(pk, nil)
	}
	if got := s.size(); got != 100 {
		t.Fatalf("size = %d, want 100", got)
	}

	s.reset()
	if got := s.size(); got != 0 {
		t.Fatalf("size after reset = %d, want 0", got)
	}
}
