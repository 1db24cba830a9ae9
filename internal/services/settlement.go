package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

// Resolver computes the outcome of a round once the stake is committed.
type Resolver func() (models.Outcome, error)

// Settler runs every wager through the same steps: validate, debit,
// resolve, credit, record.
type Settler struct {
	store   *AccountStore
	metrics *Metrics
}

func NewSettler(store *AccountStore, metrics *Metrics) *Settler {
	return &Settler{store: store, metrics: metrics}
}

// Round is a wager whose stake has been debited and which has not yet been
// credited or recorded.
type Round struct {
	ID        string
	AccountID string
	GameType  models.GameType
	Stake     int64
	OpenedAt  time.Time

	mu      sync.Mutex
	settled bool
}

// Open validates the wager and debits the stake. A rejected wager leaves
// the account untouched.
func (s *Settler) Open(ctx context.Context, accountID string, gameType models.GameType, stake int64) (*Round, error) {
	if gameType == "" {
		s.metrics.reject("invalid_game")
		return nil, ErrInvalidGameType
	}
	if stake <= 0 {
		s.metrics.reject("invalid_stake")
		return nil, ErrInvalidStake
	}
	if err := s.store.Debit(ctx, accountID, stake); err != nil {
		s.metrics.reject(rejectReason(err))
		return nil, err
	}
	s.metrics.observeStake(gameType, stake)

	return &Round{
		ID:        models.GenerateRoundID(),
		AccountID: accountID,
		GameType:  gameType,
		Stake:     stake,
		OpenedAt:  time.Now(),
	}, nil
}

// Settle credits the payout and records the result. A round settles once.
func (s *Settler) Settle(ctx context.Context, r *Round, outcome models.Outcome) (*models.BetRound, error) {
	r.mu.Lock()
	if r.settled {
		r.mu.Unlock()
		return nil, ErrRoundSettled
	}
	r.settled = true
	r.mu.Unlock()

	credited, recorded, net := classify(r.Stake, outcome)
	amount := net
	if amount < 0 {
		amount = -amount
	}
	s.store.SettleRound(ctx, r.AccountID, r.GameType, credited, recorded, amount)

	round := &models.BetRound{
		ID:        r.ID,
		AccountID: r.AccountID,
		GameType:  r.GameType,
		Stake:     r.Stake,
		Outcome:   outcome,
		Recorded:  recorded,
		Credited:  credited,
		Net:       net,
		SettledAt: time.Now(),
	}
	if acct, ok := s.store.Account(r.AccountID); ok {
		round.Balance = acct.Balance
	}
	s.metrics.observeSettle(round, r.OpenedAt)

	logger.Log.Debugw("round settled",
		"round_id", round.ID,
		"account_id", round.AccountID,
		"game", round.GameType,
		"stake", round.Stake,
		"result", round.Recorded,
		"net", round.Net,
	)
	return round, nil
}

// PlaceBet runs a whole round. If resolve fails the stake stays debited
// and nothing is credited or recorded.
func (s *Settler) PlaceBet(ctx context.Context, accountID string, gameType models.GameType, stake int64, resolve Resolver) (*models.BetRound, error) {
	r, err := s.Open(ctx, accountID, gameType, stake)
	if err != nil {
		return nil, err
	}

	outcome, err := safeResolve(resolve)
	if err != nil {
		logger.Log.Errorw("resolver failed after debit",
			"round_id", r.ID,
			"account_id", accountID,
			"game", gameType,
			"stake", stake,
			"error", err,
		)
		s.metrics.reject("resolve_failed")
		return nil, fmt.Errorf("%w: %w", ErrResolveFailed, err)
	}
	return s.Settle(ctx, r, outcome)
}

func (s *Settler) PlaceBetForCurrent(ctx context.Context, gameType models.GameType, stake int64, resolve Resolver) (*models.BetRound, error) {
	acct, ok := s.store.CurrentAccount()
	if !ok {
		s.metrics.reject("no_account")
		return nil, ErrNoCurrentAccount
	}
	return s.PlaceBet(ctx, acct.ID, gameType, stake, resolve)
}

func safeResolve(resolve Resolver) (out models.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolver panic: %v", r)
		}
	}()
	return resolve()
}

// classify turns a generator outcome into what gets credited and recorded.
// Payouts are gross. A payout equal to the stake is a push; a payout below
// the stake is a partial loss.
func classify(stake int64, o models.Outcome) (credited int64, recorded models.Result, net int64) {
	switch {
	case o.Result == models.ResultPush:
		return stake, models.ResultPush, 0
	case o.Result != models.ResultWin || o.Payout <= 0:
		return 0, models.ResultLoss, -stake
	case o.Payout > stake:
		return o.Payout, models.ResultWin, o.Payout - stake
	case o.Payout == stake:
		return stake, models.ResultPush, 0
	}
	return o.Payout, models.ResultLoss, o.Payout - stake
}

func rejectReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAccountNotFound):
		return "no_account"
	case errors.Is(err, ErrInvalidStake):
		return "invalid_stake"
	}
	return "other"
}
