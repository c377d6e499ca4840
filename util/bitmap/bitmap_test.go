package bitmap_test

import (
	"testing"

	"github.com/PengtuLi/SimpleFS/util/bitmap"
)

func TestNewBitsAllClear(t *testing.T) {
	bm := bitmap.NewBits(10)
	if bm.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", bm.Len())
	}
	for i := 0; i < 10; i++ {
		set, err := bm.IsSet(i)
		if err != nil {
			t.Fatalf("IsSet(%d): %v", i, err)
		}
		if set {
			t.Fatalf("bit %d set on a fresh bitmap", i)
		}
	}
	if got := bm.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestSetClearIsSet(t *testing.T) {
	bm := bitmap.NewBits(16)
	if err := bm.Set(3); err != nil {
		t.Fatalf("Set(3): %v", err)
	}
	if set, _ := bm.IsSet(3); !set {
		t.Fatalf("bit 3 not set after Set")
	}
	if got := bm.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	if err := bm.Clear(3); err != nil {
		t.Fatalf("Clear(3): %v", err)
	}
	if set, _ := bm.IsSet(3); set {
		t.Fatalf("bit 3 still set after Clear")
	}
}

func TestFirstFree(t *testing.T) {
	bm := bitmap.NewBits(8)
	for i := 0; i < 3; i++ {
		_ = bm.Set(i)
	}
	if got := bm.FirstFree(0); got != 3 {
		t.Fatalf("FirstFree(0) = %d, want 3", got)
	}
	if got := bm.FirstFree(5); got != 5 {
		t.Fatalf("FirstFree(5) = %d, want 5", got)
	}
	for i := 3; i < 8; i++ {
		_ = bm.Set(i)
	}
	if got := bm.FirstFree(0); got != -1 {
		t.Fatalf("FirstFree(0) on a full bitmap = %d, want -1", got)
	}
}

func TestOutOfRangeIsError(t *testing.T) {
	bm := bitmap.NewBits(4)
	if err := bm.Set(4); err == nil {
		t.Fatalf("Set(4) on a 4-bit bitmap: want error, got nil")
	}
	if _, err := bm.IsSet(-1); err == nil {
		t.Fatalf("IsSet(-1): want error, got nil")
	}
}
