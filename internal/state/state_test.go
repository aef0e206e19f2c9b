package state

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != IDLE {
		t.Fatalf("initial phase = %v, want idle", got)
	}

	store.Begin()
	if got := store.Snapshot(); got.Phase != RENDERING || got.Counters.InFlight != 1 {
		t.Fatalf("after Begin: %+v", got)
	}
	store.Finish(RenderInfo{Theme: "dracula", Width: 10, Height: 20}, false)

	store.Begin()
	store.Finish(RenderInfo{Theme: "nord", Err: "boom"}, true)

	got := store.Snapshot()
	want := Counters{Started: 2, Succeeded: 1, Failed: 1, Recovered: 1}
	if diff := cmp.Diff(want, got.Counters); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
	if got.Phase != ERROR {
		t.Errorf("phase = %v, want error", got.Phase)
	}
	if diff := cmp.Diff(map[string]uint64{"dracula": 1}, got.ByTheme); diff != "" {
		t.Errorf("by theme mismatch (-want +got):\n%s", diff)
	}
	if got.Last.Err != "boom" {
		t.Errorf("last error = %q", got.Last.Err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.Begin()
	store.Finish(RenderInfo{Theme: "github"}, false)
	snap := store.Snapshot()
	snap.ByTheme["github"] = 100
	if got := store.Snapshot().ByTheme["github"]; got != 1 {
		t.Errorf("store mutated through snapshot: %d", got)
	}
}

func TestStoreConcurrent(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Begin()
			_ = store.Snapshot()
			store.Finish(RenderInfo{Theme: "nord"}, false)
		}()
	}
	wg.Wait()
	got := store.Snapshot()
	if got.Counters.Succeeded != 50 || got.Counters.InFlight != 0 || got.Phase != DONE {
		t.Errorf("after concurrent renders: %+v", got)
	}
}
