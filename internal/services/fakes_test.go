package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

// fakeTaskStore records every write so tests can assert which pipeline
// touched which row and in what order.
type fakeTaskStore struct {
	mu sync.Mutex

	upserted []*models.Task
	pending  []*models.Task
	cleared  []string
	ops      []string

	pendingIDs map[string]bool

	upsertErr error
	listErr   error
	clearErr  error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{pendingIDs: map[string]bool{}}
}

func (f *fakeTaskStore) UpsertFromNotion(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, task)
	f.ops = append(f.ops, "upsert "+task.ID)
	return nil
}

func (f *fakeTaskStore) UpsertFromNotionUnlessPending(_ context.Context, task *models.Task) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	if f.pendingIDs[task.ID] {
		return false, nil
	}
	f.upserted = append(f.upserted, task)
	return true, nil
}

func (f *fakeTaskStore) ListPendingPush(_ context.Context) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Task, len(f.pending))
	copy(out, f.pending)
	return out, nil
}

func (f *fakeTaskStore) ClearPending(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, id)
	f.ops = append(f.ops, "clear "+id)

	kept := f.pending[:0]
	for _, task := range f.pending {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	f.pending = kept
	return nil
}

type fakePageFetcher struct {
	task  *models.Task
	err   error
	calls int
}

func (f *fakePageFetcher) FetchTask(_ context.Context, pageID string) (*models.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.task != nil {
		return f.task, nil
	}
	return &models.Task{ID: pageID}, nil
}

type fakePageUpdater struct {
	mu     sync.Mutex
	pushed []*models.Task
	failID string
	store  *fakeTaskStore
}

func (f *fakePageUpdater) PushTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == f.failID {
		return fmt.Errorf("notion unavailable for %s", task.ID)
	}
	f.pushed = append(f.pushed, task)
	if f.store != nil {
		f.store.mu.Lock()
		f.store.ops = append(f.store.ops, "push "+task.ID)
		f.store.mu.Unlock()
	}
	return nil
}

func (f *fakePageUpdater) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushed)
}

type fakePageLister struct {
	tasks []*models.Task
	err   error
}

func (f *fakePageLister) ListTasks(_ context.Context, _ string, fn func(*models.Task) error) error {
	if f.err != nil {
		return f.err
	}
	for _, task := range f.tasks {
		err := fn(task)
		if err != nil {
			return err
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
