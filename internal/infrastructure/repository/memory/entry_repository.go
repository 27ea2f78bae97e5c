package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbrandall/survivor-pool/internal/domain/entry"
)

type EntryRepository struct {
	mu    sync.RWMutex
	items []entry.Entry
}

func NewEntryRepository() *EntryRepository {
	return &EntryRepository{}
}

func (r *EntryRepository) CreateWithQuota(_ context.Context, e entry.Entry, maxPerEmail int) (entry.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.countLocked(e.Email)
	if count >= maxPerEmail {
		return entry.Entry{}, fmt.Errorf("%w: %s already has %d entries", entry.ErrQuotaExceeded, e.Email, count)
	}
	if count > 0 {
		e.Name = fmt.Sprintf("%s-%d", e.Name, count+1)
	}

	r.items = append(r.items, cloneEntry(e))
	return e, nil
}

func (r *EntryRepository) Create(_ context.Context, e entry.Entry) (entry.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneEntry(e))
	return e, nil
}

func (r *EntryRepository) CountByEmail(_ context.Context, email string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.countLocked(email), nil
}

func (r *EntryRepository) List(_ context.Context) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneEntry(item))
	}
	return out, nil
}

func (r *EntryRepository) UpdatePayment(_ context.Context, entryID string, paid bool, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == entryID {
			r.items[i].Paid = paid
			r.items[i].Notes = notes
			return true, nil
		}
	}
	return false, nil
}

func (r *EntryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	return nil
}

func (r *EntryRepository) countLocked(email string) int {
	count := 0
	for _, item := range r.items {
		if item.Email == email {
			count++
		}
	}
	return count
}

func cloneEntry(e entry.Entry) entry.Entry {
	copied := e
	copied.Picks = append([]entry.Pick(nil), e.Picks...)
	return copied
}
