package pool

import "testing"

func leafAt(i byte) Bytes32 {
	var b Bytes32
	b[31] = i
	b[0] = 0x01
	return b
}

func TestAppendAdvancesLeafIndexAndRoot(t *testing.T) {
	a := NewAccumulator(20, 100)
	initialRoot := a.CurrentRoot()

	idx, err := a.Append(leafAt(1))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if idx != 0 {
		t.Fatalf("got leaf index %d, want 0", idx)
	}
	if a.CurrentRoot() == initialRoot {
		t.Fatal("root must change after append")
	}
	if !a.IsFresh(a.CurrentRoot()) {
		t.Fatal("current root must be fresh")
	}
}

func TestFirstAppendWritesHistorySlotZero(t *testing.T) {
	a := NewAccumulator(20, 100)
	if a.historyLen != 0 {
		t.Fatalf("got historyLen %d before any append, want 0", a.historyLen)
	}

	if _, err := a.Append(leafAt(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if a.historyLen != 1 {
		t.Fatalf("got historyLen %d after one append, want 1", a.historyLen)
	}
	if a.history[0] != a.CurrentRoot() {
		t.Fatal("history slot 0 must hold the new root after the first append")
	}
}

func TestAccumulatorFullRejectsBeyondCapacity(t *testing.T) {
	a := NewAccumulator(4, 30) // capacity 16
	for i := 0; i < 16; i++ {
		if _, err := a.Append(leafAt(byte(i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if _, err := a.Append(leafAt(99)); err != ErrAccumulatorFull {
		t.Fatalf("got %v, want ErrAccumulatorFull", err)
	}
}

func TestHistoryEvictsOldestBeyondWindow(t *testing.T) {
	a := NewAccumulator(10, 3)
	roots := make([]Bytes32, 0, 5)
	for i := 0; i < 5; i++ {
		if _, err := a.Append(leafAt(byte(i + 1))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		roots = append(roots, a.CurrentRoot())
	}
	if a.IsFresh(roots[0]) {
		t.Fatal("r1 should have been evicted from a 3-slot history after 5 appends")
	}
	if !a.IsFresh(roots[4]) {
		t.Fatal("r5 (current) must be fresh")
	}
	if !a.IsFresh(roots[3]) {
		t.Fatal("r4 must still be in history")
	}
}

func TestLaterAppendsAdvanceRootAndLeafIndex(t *testing.T) {
	a := NewAccumulator(8, 50)
	if _, err := a.Append(leafAt(1)); err != nil {
		t.Fatalf("append 0: %v", err)
	}
	rootAfterFirst := a.CurrentRoot()

	for i := 2; i <= 10; i++ {
		if _, err := a.Append(leafAt(byte(i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if a.CurrentRoot() == rootAfterFirst {
		t.Fatal("root must have advanced past the first append")
	}
	if a.NextLeafIndex() != 10 {
		t.Fatalf("got next leaf index %d, want 10", a.NextLeafIndex())
	}
}
