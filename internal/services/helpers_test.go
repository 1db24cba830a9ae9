package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/services"
)

var errDiskFull = errors.New("disk full")

// failingStore accepts reads but rejects every write.
type failingStore struct {
	*services.MemoryStore
}

func (failingStore) Set(context.Context, string, []byte) error { return errDiskFull }
func (failingStore) Delete(context.Context, string) error      { return errDiskFull }

// currentKeyFailingStore rejects writes of the current-account snapshot once
// failing is set.
type currentKeyFailingStore struct {
	*services.MemoryStore
	failing bool
}

func (s *currentKeyFailingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failing && key == services.KeyCurrentAccount {
		return errDiskFull
	}
	return s.MemoryStore.Set(ctx, key, value)
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	updates  []models.Account
	warnings []error
}

func (r *recordingBroadcaster) BroadcastAccountUpdate(a models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, a)
}

func (r *recordingBroadcaster) BroadcastStorageWarning(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, err)
}

func newTestStore(t *testing.T, opts ...services.StoreOption) *services.AccountStore {
	t.Helper()
	store, err := services.NewAccountStore(context.Background(), services.NewMemoryStore(), opts...)
	if err != nil {
		t.Fatalf("NewAccountStore: %v", err)
	}
	return store
}

func login(t *testing.T, store *services.AccountStore, username string) models.Account {
	t.Helper()
	acct, err := store.CreateOrGetAccount(context.Background(), username)
	if err != nil {
		t.Fatalf("CreateOrGetAccount(%q): %v", username, err)
	}
	return acct
}

func balanceOf(t *testing.T, store *services.AccountStore, id string) int64 {
	t.Helper()
	acct, ok := store.Account(id)
	if !ok {
		t.Fatalf("account %s not found", id)
	}
	return acct.Balance
}
