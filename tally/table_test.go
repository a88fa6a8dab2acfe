package tally

import (
	"math"
	"testing"

	"github.com/pithecene-io/packetcount/types"
)

func TestTable_LazyCreation(t *testing.T) {
	tbl := NewTable()
	if tbl.Len() != 0 {
		t.Fatalf("new table has %d streams", tbl.Len())
	}
	if _, ok := tbl.Lookup(1); ok {
		t.Fatal("lookup of unseen stream succeeded")
	}
	if tbl.PendingSkip(1) != 0 {
		t.Fatal("unseen stream has a pending skip")
	}
	if tbl.Len() != 0 {
		t.Fatal("read-only calls must not create streams")
	}

	tbl.Touch(1)
	c, ok := tbl.Lookup(1)
	if !ok {
		t.Fatal("touched stream missing")
	}
	if c.Total() != 0 {
		t.Errorf("touched stream has %d records", c.Total())
	}
}

func TestTable_Counts(t *testing.T) {
	tbl := NewTable()
	tbl.Count(3, types.KindAccepted)
	tbl.Count(3, types.KindAccepted)
	tbl.Count(3, types.KindExecuted)
	tbl.CountUnknown(3)
	tbl.AddShares(3, 250)
	tbl.AddShares(3, 250)
	tbl.Count(3, types.MessageKind(types.NumKinds))

	c, _ := tbl.Lookup(3)
	if c.Count(types.KindAccepted) != 2 {
		t.Errorf("Accepted = %d, want 2", c.Count(types.KindAccepted))
	}
	if c.Count(types.KindExecuted) != 1 {
		t.Errorf("Executed = %d, want 1", c.Count(types.KindExecuted))
	}
	if c.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", c.Unknown)
	}
	if c.ExecutedShares != 500 {
		t.Errorf("ExecutedShares = %d, want 500", c.ExecutedShares)
	}
	if c.Total() != 4 {
		t.Errorf("Total = %d, want 4", c.Total())
	}
}

func TestTable_SharesWrap(t *testing.T) {
	tbl := NewTable()
	tbl.AddShares(1, math.MaxUint32)
	tbl.AddShares(1, 2)

	c, _ := tbl.Lookup(1)
	if c.ExecutedShares != 1 {
		t.Errorf("ExecutedShares = %d, want 1 after wrap", c.ExecutedShares)
	}
}

func TestTable_PendingSkip(t *testing.T) {
	tbl := NewTable()
	tbl.SetPendingSkip(9, 23)
	if got := tbl.PendingSkip(9); got != 23 {
		t.Fatalf("PendingSkip = %d, want 23", got)
	}
	if got := tbl.PendingSkip(8); got != 0 {
		t.Fatalf("other stream PendingSkip = %d, want 0", got)
	}

	tbl.ClearPendingSkip(9)
	if got := tbl.PendingSkip(9); got != 0 {
		t.Fatalf("PendingSkip after clear = %d, want 0", got)
	}
	tbl.ClearPendingSkip(100)
	if tbl.Len() != 1 {
		t.Errorf("ClearPendingSkip created a stream")
	}
}

func TestTable_SnapshotAscending(t *testing.T) {
	tbl := NewTable()
	for _, id := range []types.StreamID{500, 2, 65535, 0, 17} {
		tbl.Count(id, types.KindCanceled)
	}

	snap := tbl.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("snapshot has %d streams, want 5", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Stream >= snap[i].Stream {
			t.Fatalf("snapshot not ascending: %d before %d", snap[i-1].Stream, snap[i].Stream)
		}
	}
	if snap[0].Stream != 0 || snap[4].Stream != 65535 {
		t.Errorf("unexpected bounds %d..%d", snap[0].Stream, snap[4].Stream)
	}
	for _, s := range snap {
		if s.Canceled != 1 {
			t.Errorf("stream %d Canceled = %d, want 1", s.Stream, s.Canceled)
		}
	}
}
