package render

import "testing"

func TestLoadGuardNewestApplies(t *testing.T) {
	var g loadGuard

	gen := g.Begin()
	if g.Stale(gen) {
		t.Fatal("only pending load must not be stale")
	}
}

func TestLoadGuardDiscardsSuperseded(t *testing.T) {
	// A slow load that finishes after a newer one began must be
	// recognized as stale, whatever the completion order.
	var g loadGuard

	old := g.Begin()
	newer := g.Begin()

	if !g.Stale(old) {
		t.Error("superseded load must be stale")
	}
	if g.Stale(newer) {
		t.Error("newest load must apply")
	}

	// Still stale after the newer load completed.
	if !g.Stale(old) {
		t.Error("old token must stay stale")
	}
}
