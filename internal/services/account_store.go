package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

const accountsSchemaVersion = 1

type accountsEnvelope struct {
	Version  int              `json:"version"`
	Accounts []models.Account `json:"accounts"`
}

// AccountStore owns the account set and the current-account pointer. Every
// mutation is written through to the KeyValueStore; a failed write is
// logged and broadcast but the in-memory state stays authoritative.
type AccountStore struct {
	mu       sync.RWMutex
	kv       KeyValueStore
	observer Broadcaster
	metrics  *Metrics
	now      func() time.Time

	accounts []*models.Account
	byID     map[string]*models.Account
	byName   map[string]*models.Account
	current  *models.Account
	admin    *models.Account
}

type StoreOption func(*AccountStore)

func WithBroadcaster(b Broadcaster) StoreOption {
	return func(s *AccountStore) {
		if b != nil {
			s.observer = b
		}
	}
}

func WithMetrics(m *Metrics) StoreOption {
	return func(s *AccountStore) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *AccountStore) {
		s.now = now
	}
}

func NewAccountStore(ctx context.Context, kv KeyValueStore, opts ...StoreOption) (*AccountStore, error) {
	s := &AccountStore{
		kv:       kv,
		observer: nopBroadcaster{},
		now:      time.Now,
		byID:     make(map[string]*models.Account),
		byName:   make(map[string]*models.Account),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// SetBroadcaster swaps the observer after construction.
func (s *AccountStore) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b == nil {
		b = nopBroadcaster{}
	}
	s.observer = b
}

func (s *AccountStore) load(ctx context.Context) error {
	data, err := s.kv.Get(ctx, KeyAccounts)
	switch {
	case errors.Is(err, ErrKeyNotFound):
	case err != nil:
		return fmt.Errorf("load accounts: %w", err)
	default:
		accounts, err := decodeAccounts(data)
		if err != nil {
			return err
		}
		for i := range accounts {
			s.insertLocked(normalizeAccount(accounts[i]))
		}
	}

	data, err = s.kv.Get(ctx, KeyCurrentAccount)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("load current account: %w", err)
	}

	var snapshot models.Account
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decode current account: %w", err)
	}
	if snapshot.ID == models.AdminID {
		s.admin = models.NewAdminAccount(s.now())
		s.current = s.admin
		return nil
	}
	if acct, ok := s.byID[snapshot.ID]; ok {
		s.current = acct
		return nil
	}
	acct := normalizeAccount(snapshot)
	s.insertLocked(acct)
	s.current = acct
	return nil
}

// decodeAccounts accepts the versioned envelope and the bare array written
// by earlier releases.
func decodeAccounts(data []byte) ([]models.Account, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var legacy []models.Account
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy accounts: %w", err)
		}
		return legacy, nil
	}

	var env accountsEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	if env.Version > accountsSchemaVersion {
		return nil, fmt.Errorf("accounts schema version %d is newer than %d", env.Version, accountsSchemaVersion)
	}
	return env.Accounts, nil
}

func normalizeAccount(a models.Account) *models.Account {
	if a.ID == "" {
		a.ID = models.GenerateAccountID()
	}
	if a.Balance < 0 {
		a.Balance = 0
	}
	if a.Stats.Games == nil {
		a.Stats.Games = make(map[models.GameType]models.GameStats)
	}
	if a.Inventory == nil {
		a.Inventory = []models.InventoryItem{}
	}
	return &a
}

func (s *AccountStore) insertLocked(a *models.Account) {
	if _, dup := s.byID[a.ID]; dup {
		return
	}
	s.accounts = append(s.accounts, a)
	s.byID[a.ID] = a
	s.byName[a.Username] = a
}

func (s *AccountStore) lookupLocked(id string) (*models.Account, bool) {
	if id == models.AdminID {
		return s.admin, s.admin != nil
	}
	a, ok := s.byID[id]
	return a, ok
}

func (s *AccountStore) persistLocked(ctx context.Context) {
	env := accountsEnvelope{
		Version:  accountsSchemaVersion,
		Accounts: make([]models.Account, len(s.accounts)),
	}
	for i, a := range s.accounts {
		env.Accounts[i] = *a
	}

	// The set goes first and is authoritative on load: a current snapshot
	// left stale by a failed second write resolves to the set entry by id.
	err := s.writeJSON(ctx, KeyAccounts, env)
	if err == nil {
		if s.current != nil {
			err = s.writeJSON(ctx, KeyCurrentAccount, s.current)
		} else {
			err = s.kv.Delete(ctx, KeyCurrentAccount)
		}
	}
	if err != nil {
		logger.Log.Warnw("failed to persist accounts", "error", err)
		s.metrics.storageFailed()
		s.observer.BroadcastStorageWarning(err)
	}
}

func (s *AccountStore) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}

// mutate applies fn to the account under the write lock, persists, and
// notifies observers once the lock is released. Unknown ids and the admin
// account are left untouched.
func (s *AccountStore) mutate(ctx context.Context, id string, fn func(a *models.Account)) bool {
	s.mu.Lock()
	a, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	fn(a)
	s.persistLocked(ctx)
	snapshot := a.Clone()
	observer := s.observer
	s.mu.Unlock()

	observer.BroadcastAccountUpdate(snapshot)
	return true
}

// CreateOrGetAccount logs in by username, creating the account on first
// use. The reserved admin username yields a fresh admin account that is
// never added to the set.
func (s *AccountStore) CreateOrGetAccount(ctx context.Context, username string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Account{}, ErrInvalidUsername
	}

	s.mu.Lock()
	var acct *models.Account
	if username == models.AdminUsername {
		s.admin = models.NewAdminAccount(s.now())
		acct = s.admin
	} else if existing, ok := s.byName[username]; ok {
		acct = existing
	} else {
		acct = models.NewAccount(username, s.now())
		s.insertLocked(acct)
		logger.Log.Infow("account created", "account_id", acct.ID, "username", username)
	}
	s.current = acct
	s.persistLocked(ctx)
	snapshot := acct.Clone()
	observer := s.observer
	s.mu.Unlock()

	observer.BroadcastAccountUpdate(snapshot)
	return snapshot, nil
}

func (s *AccountStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.admin = nil
	s.persistLocked(ctx)
}

// addBalance applies delta, saturating at math.MaxInt64 and flooring at
// zero. Balances are never negative, so only credits can overflow.
func addBalance(a *models.Account, delta int64) {
	if delta > 0 && a.Balance > math.MaxInt64-delta {
		a.Balance = math.MaxInt64
		return
	}
	a.Balance += delta
	if a.Balance < 0 {
		a.Balance = 0
	}
}

// AdjustBalance adds delta to the balance, flooring at zero.
func (s *AccountStore) AdjustBalance(ctx context.Context, accountID string, delta int64) {
	s.mutate(ctx, accountID, func(a *models.Account) {
		addBalance(a, delta)
	})
}

// Debit removes stake from the balance only if the balance covers it.
// The admin account always passes without being charged.
func (s *AccountStore) Debit(ctx context.Context, accountID string, stake int64) error {
	if stake <= 0 {
		return ErrInvalidStake
	}

	s.mu.Lock()
	if accountID == models.AdminID && s.admin != nil {
		s.mu.Unlock()
		return nil
	}
	a, ok := s.byID[accountID]
	if !ok {
		s.mu.Unlock()
		return ErrAccountNotFound
	}
	if a.Balance < stake {
		balance := a.Balance
		s.mu.Unlock()
		return fmt.Errorf("%w: balance %s, stake %s", ErrInsufficientFunds,
			models.FormatCurrency(balance), models.FormatCurrency(stake))
	}
	a.Balance -= stake
	s.persistLocked(ctx)
	snapshot := a.Clone()
	observer := s.observer
	s.mu.Unlock()

	observer.BroadcastAccountUpdate(snapshot)
	return nil
}

// RecordOutcome bumps the play counters. Negative amounts count as zero.
func (s *AccountStore) RecordOutcome(ctx context.Context, accountID string, gameType models.GameType, won bool, amount int64) {
	if amount < 0 {
		amount = 0
	}
	s.mutate(ctx, accountID, func(a *models.Account) {
		if won {
			a.Stats.RecordWin(gameType, amount)
		} else {
			a.Stats.RecordLoss(gameType, amount)
		}
	})
}

func (s *AccountStore) RecordPush(ctx context.Context, accountID string, gameType models.GameType) {
	s.mutate(ctx, accountID, func(a *models.Account) {
		a.Stats.RecordPush(gameType)
	})
}

// SettleRound credits a settled round and records its result in a single
// write, so observers never see the credit without the stats. amount is the
// net won or lost and is ignored for pushes.
func (s *AccountStore) SettleRound(ctx context.Context, accountID string, gameType models.GameType, credited int64, result models.Result, amount int64) {
	if amount < 0 {
		amount = 0
	}
	s.mutate(ctx, accountID, func(a *models.Account) {
		if credited > 0 {
			addBalance(a, credited)
		}
		switch result {
		case models.ResultWin:
			a.Stats.RecordWin(gameType, amount)
		case models.ResultPush:
			a.Stats.RecordPush(gameType)
		default:
			a.Stats.RecordLoss(gameType, amount)
		}
	})
}

// ResetToStartingBalance is the bankruptcy reset. Stats are kept.
func (s *AccountStore) ResetToStartingBalance(ctx context.Context, accountID string) {
	s.mutate(ctx, accountID, func(a *models.Account) {
		a.Balance = models.StartingBalance
	})
	logger.Log.Infow("bankruptcy declared", "account_id", accountID)
}

func (s *AccountStore) GrantBalance(ctx context.Context, accountID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !s.mutate(ctx, accountID, func(a *models.Account) { addBalance(a, amount) }) {
		return ErrAccountNotFound
	}
	return nil
}

func (s *AccountStore) ListAccounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Account, len(s.accounts))
	for i, a := range s.accounts {
		out[i] = a.Clone()
	}
	return out
}

func (s *AccountStore) CurrentAccount() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Account{}, false
	}
	return s.current.Clone(), true
}

func (s *AccountStore) Account(id string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.lookupLocked(id)
	if !ok {
		return models.Account{}, false
	}
	return a.Clone(), true
}

// Leaderboard ranks accounts by total winnings; ties keep signup order.
func (s *AccountStore) Leaderboard(limit int) []models.LeaderboardEntry {
	accounts := s.ListAccounts()
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Stats.TotalWinnings > accounts[j].Stats.TotalWinnings
	})
	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}

	entries := make([]models.LeaderboardEntry, len(accounts))
	for i, a := range accounts {
		entries[i] = models.LeaderboardEntry{
			Rank:          i + 1,
			AccountID:     a.ID,
			Username:      a.Username,
			TotalWinnings: a.Stats.TotalWinnings,
			GamesPlayed:   a.Stats.GamesPlayed,
			BiggestWin:    a.Stats.BiggestWin,
			Balance:       a.Balance,
		}
	}
	return entries
}
