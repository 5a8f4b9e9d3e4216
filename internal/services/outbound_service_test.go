package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

func newOutboundForTest(updater *fakePageUpdater, store *fakeTaskStore, interval time.Duration) OutboundService {
	return NewOutboundService(zerolog.Nop(), updater, store, interval, time.Second)
}

func TestRunCyclePushesAndClearsPending(t *testing.T) {
	store := newFakeTaskStore()
	store.pending = []*models.Task{
		{ID: "p1", Status: strPtr("Blocked"), Origin: models.OriginDB},
		{ID: "p2", Status: strPtr("Done"), Origin: models.OriginDB},
	}
	updater := &fakePageUpdater{store: store}
	svc := newOutboundForTest(updater, store, time.Second)

	svc.RunCycle(context.Background())

	if len(updater.pushed) != 2 {
		t.Fatalf("expected 2 pushes, got %d", len(updater.pushed))
	}
	if len(store.cleared) != 2 || store.cleared[0] != "p1" || store.cleared[1] != "p2" {
		t.Fatalf("unexpected cleared ids: %v", store.cleared)
	}
	if len(store.pending) != 0 {
		t.Errorf("expected no pending rows left, got %d", len(store.pending))
	}
}

// The marker is the commit point: it must be cleared only after the
// push succeeded, never before.
func TestRunCycleClearsAfterPush(t *testing.T) {
	store := newFakeTaskStore()
	store.pending = []*models.Task{{ID: "p1", Status: strPtr("Done")}}
	updater := &fakePageUpdater{store: store}
	svc := newOutboundForTest(updater, store, time.Second)

	svc.RunCycle(context.Background())

	want := []string{"push p1", "clear p1"}
	if len(store.ops) != len(want) {
		t.Fatalf("unexpected ops: %v", store.ops)
	}
	for i := range want {
		if store.ops[i] != want[i] {
			t.Fatalf("op %d = %q, want %q", i, store.ops[i], want[i])
		}
	}
}

func TestRunCycleContinuesAfterPushFailure(t *testing.T) {
	store := newFakeTaskStore()
	store.pending = []*models.Task{
		{ID: "p1", Status: strPtr("Blocked")},
		{ID: "p2", Status: strPtr("Done")},
	}
	updater := &fakePageUpdater{store: store, failID: "p1"}
	svc := newOutboundForTest(updater, store, time.Second)

	svc.RunCycle(context.Background())

	if len(updater.pushed) != 1 || updater.pushed[0].ID != "p2" {
		t.Fatalf("expected only p2 pushed, got %+v", updater.pushed)
	}
	if len(store.cleared) != 1 || store.cleared[0] != "p2" {
		t.Fatalf("unexpected cleared ids: %v", store.cleared)
	}
	// p1 keeps its marker and is retried on the next cycle.
	if len(store.pending) != 1 || store.pending[0].ID != "p1" {
		t.Fatalf("expected p1 still pending, got %+v", store.pending)
	}

	updater.failID = ""
	svc.RunCycle(context.Background())
	if len(store.pending) != 0 {
		t.Errorf("expected retry to drain pending rows, got %d left", len(store.pending))
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := newFakeTaskStore()
	store.pending = []*models.Task{{ID: "p1", Status: strPtr("Done")}}
	updater := &fakePageUpdater{store: store}
	svc := newOutboundForTest(updater, store, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for updater.pushCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("scanner never pushed the pending row")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scanner did not stop after cancel")
	}
}

// Full round trip of the reconciliation policy: an inbound event lands
// without scheduling an echo, a later local edit is pushed out within
// one cycle, and the marker ends up clear.
func TestInboundThenOutboundScenario(t *testing.T) {
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeTaskStore()
	fetcher := &fakePageFetcher{task: &models.Task{
		ID:      "p1",
		Name:    strPtr("Ship release"),
		Status:  strPtr("Done"),
		DueDate: &due,
	}}
	inbound := newInboundForTest(fetcher, store)

	err := inbound.HandlePageEvent(context.Background(), PageEvent{
		Type:     EventPagePropertiesUpdated,
		EntityID: "p1",
	})
	if err != nil {
		t.Fatalf("HandlePageEvent failed: %v", err)
	}
	if got, _ := store.ListPendingPush(context.Background()); len(got) != 0 {
		t.Fatalf("inbound event left %d rows pending", len(got))
	}

	// A local process edits the row and marks it for propagation.
	store.pending = []*models.Task{{
		ID:      "p1",
		Name:    strPtr("Ship release"),
		Status:  strPtr("Blocked"),
		DueDate: &due,
		Origin:  models.OriginDB,
	}}

	updater := &fakePageUpdater{store: store}
	outbound := newOutboundForTest(updater, store, time.Second)
	outbound.RunCycle(context.Background())

	if len(updater.pushed) != 1 || *updater.pushed[0].Status != "Blocked" {
		t.Fatalf("expected Blocked pushed to notion, got %+v", updater.pushed)
	}
	if len(store.pending) != 0 {
		t.Errorf("expected marker cleared after push, %d rows still pending", len(store.pending))
	}
}
