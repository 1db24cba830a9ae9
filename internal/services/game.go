package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

// GameEngine routes play requests to the catalogue generators and runs
// every round through the Settler. An account may have at most one round
// of a given game in flight.
type GameEngine struct {
	settler   *Settler
	catalogue *games.Catalogue
	rng       games.Source
	metrics   *Metrics

	mu          sync.Mutex
	activeGames map[string]*GameInstance
	inFlight    map[string]struct{}
}

// GameInstance is a multi-step round waiting on player actions.
type GameInstance struct {
	Session    *models.GameSession
	StartedAt  time.Time
	LastUpdate time.Time

	mu    sync.Mutex
	play  games.Session
	round *Round
	done  bool
}

// stakePricer is implemented by games whose stake is fixed by the
// selection, like scratch cards.
type stakePricer interface {
	StakeFor(sel models.Selection) (int64, error)
}

func NewGameEngine(settler *Settler, catalogue *games.Catalogue, rng games.Source, metrics *Metrics) *GameEngine {
	return &GameEngine{
		settler:     settler,
		catalogue:   catalogue,
		rng:         rng,
		metrics:     metrics,
		activeGames: make(map[string]*GameInstance),
		inFlight:    make(map[string]struct{}),
	}
}

func (ge *GameEngine) Catalogue() *games.Catalogue {
	return ge.catalogue
}

func inFlightKey(accountID string, gameType models.GameType) string {
	return accountID + "|" + string(gameType)
}

func (ge *GameEngine) acquire(accountID string, gameType models.GameType) error {
	ge.mu.Lock()
	defer ge.mu.Unlock()
	key := inFlightKey(accountID, gameType)
	if _, busy := ge.inFlight[key]; busy {
		ge.metrics.reject("in_progress")
		return ErrRoundInProgress
	}
	ge.inFlight[key] = struct{}{}
	return nil
}

func (ge *GameEngine) release(accountID string, gameType models.GameType) {
	ge.mu.Lock()
	delete(ge.inFlight, inFlightKey(accountID, gameType))
	ge.mu.Unlock()
}

// Play resolves a single-shot round.
func (ge *GameEngine) Play(ctx context.Context, accountID string, req *models.PlayRequest) (*models.BetRound, error) {
	game, ok := ge.catalogue.Game(req.GameType)
	if !ok {
		ge.metrics.reject("invalid_game")
		if ge.catalogue.IsSession(req.GameType) {
			return nil, fmt.Errorf("%w: %s is played through a session", ErrInvalidGameType, req.GameType)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidGameType, req.GameType)
	}

	stake := req.Stake
	if p, ok := game.(stakePricer); ok {
		price, err := p.StakeFor(req.Selection)
		if err != nil {
			ge.metrics.reject("invalid_selection")
			return nil, err
		}
		if stake == 0 {
			stake = price
		} else if stake != price {
			ge.metrics.reject("invalid_stake")
			return nil, fmt.Errorf("%w: this card costs %s", ErrInvalidStake, models.FormatCurrency(price))
		}
	}
	if stake <= 0 {
		ge.metrics.reject("invalid_stake")
		return nil, ErrInvalidStake
	}
	if err := games.CheckSelection(game, stake, req.Selection); err != nil {
		ge.metrics.reject("invalid_selection")
		return nil, err
	}

	if err := ge.acquire(accountID, req.GameType); err != nil {
		return nil, err
	}
	defer ge.release(accountID, req.GameType)

	sel := req.Selection
	return ge.settler.PlaceBet(ctx, accountID, req.GameType, stake, func() (models.Outcome, error) {
		return game.Play(ge.rng, stake, sel)
	})
}

// StartSession debits the stake and deals a multi-step round.
func (ge *GameEngine) StartSession(ctx context.Context, accountID string, req *models.SessionRequest) (*models.GameSession, error) {
	if !ge.catalogue.IsSession(req.GameType) {
		ge.metrics.reject("invalid_game")
		return nil, fmt.Errorf("%w: %s has no session mode", ErrInvalidGameType, req.GameType)
	}
	if req.Stake <= 0 {
		ge.metrics.reject("invalid_stake")
		return nil, ErrInvalidStake
	}

	if err := ge.acquire(accountID, req.GameType); err != nil {
		return nil, err
	}

	play, err := ge.catalogue.NewSession(req.GameType, ge.rng, req.Level)
	if err != nil {
		ge.release(accountID, req.GameType)
		return nil, err
	}

	round, err := ge.settler.Open(ctx, accountID, req.GameType, req.Stake)
	if err != nil {
		ge.release(accountID, req.GameType)
		return nil, err
	}

	now := time.Now()
	instance := &GameInstance{
		Session: &models.GameSession{
			ID:        models.GenerateSessionID(),
			AccountID: accountID,
			GameType:  req.GameType,
			Stake:     req.Stake,
			Status:    models.SessionActive,
			StartedAt: now,
			UpdatedAt: now,
		},
		StartedAt:  now,
		LastUpdate: now,
		play:       play,
		round:      round,
	}

	ge.mu.Lock()
	ge.activeGames[instance.Session.ID] = instance
	ge.mu.Unlock()
	ge.metrics.sessionOpened()

	logger.Log.Infow("game session started",
		"session_id", instance.Session.ID,
		"account_id", accountID,
		"game", req.GameType,
		"stake", req.Stake,
	)

	instance.mu.Lock()
	defer instance.mu.Unlock()
	if play.Finished() {
		if err := ge.finishLocked(ctx, instance, models.SessionCompleted); err != nil {
			return nil, err
		}
	}
	return instance.snapshotLocked(), nil
}

// Act applies a player action to an active session, settling it when the
// action ends the round.
func (ge *GameEngine) Act(ctx context.Context, accountID, sessionID string, action models.Action) (*models.GameSession, error) {
	ge.mu.Lock()
	instance, ok := ge.activeGames[sessionID]
	ge.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if instance.Session.AccountID != accountID {
		return nil, ErrForbidden
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	if instance.done {
		return nil, ErrSessionNotFound
	}

	if err := instance.play.Apply(action); err != nil {
		return nil, err
	}
	instance.LastUpdate = time.Now()

	if instance.play.Finished() {
		if err := ge.finishLocked(ctx, instance, models.SessionCompleted); err != nil {
			return nil, err
		}
	}
	return instance.snapshotLocked(), nil
}

// finishLocked settles the round and retires the instance. The caller
// holds instance.mu.
func (ge *GameEngine) finishLocked(ctx context.Context, instance *GameInstance, status models.SessionStatus) error {
	instance.done = true
	s := instance.Session

	ge.mu.Lock()
	delete(ge.activeGames, s.ID)
	ge.mu.Unlock()
	defer ge.release(s.AccountID, s.GameType)
	ge.metrics.sessionClosed()

	round, err := ge.settler.Settle(ctx, instance.round, instance.play.Outcome(s.Stake))
	if err != nil {
		if errors.Is(err, ErrRoundSettled) {
			return nil
		}
		return err
	}

	s.Status = status
	s.Round = round
	s.UpdatedAt = time.Now()

	logger.Log.Infow("game session finished",
		"session_id", s.ID,
		"account_id", s.AccountID,
		"game", s.GameType,
		"status", status,
		"result", round.Recorded,
		"net", round.Net,
	)
	return nil
}

func (gi *GameInstance) snapshotLocked() *models.GameSession {
	snapshot := *gi.Session
	snapshot.State = gi.play.View()
	return &snapshot
}

func (ge *GameEngine) GetActiveGame(sessionID string) (*models.GameSession, bool) {
	ge.mu.Lock()
	instance, ok := ge.activeGames[sessionID]
	ge.mu.Unlock()
	if !ok {
		return nil, false
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	return instance.snapshotLocked(), true
}

func (ge *GameEngine) GetAccountActiveGames(accountID string) []*models.GameSession {
	ge.mu.Lock()
	var instances []*GameInstance
	for _, instance := range ge.activeGames {
		if instance.Session.AccountID == accountID {
			instances = append(instances, instance)
		}
	}
	ge.mu.Unlock()

	sessions := make([]*models.GameSession, 0, len(instances))
	for _, instance := range instances {
		instance.mu.Lock()
		if !instance.done {
			sessions = append(sessions, instance.snapshotLocked())
		}
		instance.mu.Unlock()
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions
}

// CleanupStaleGames forfeits sessions idle for longer than maxAge. Each
// forfeited round is settled with the game's default play.
func (ge *GameEngine) CleanupStaleGames(ctx context.Context, maxAge time.Duration) int {
	ge.mu.Lock()
	var candidates []*GameInstance
	for _, instance := range ge.activeGames {
		candidates = append(candidates, instance)
	}
	ge.mu.Unlock()

	forfeited := 0
	for _, instance := range candidates {
		instance.mu.Lock()
		if !instance.done && time.Since(instance.LastUpdate) > maxAge {
			instance.play.Forfeit()
			if err := ge.finishLocked(ctx, instance, models.SessionForfeited); err != nil {
				logger.Log.Errorw("failed to settle forfeited session",
					"session_id", instance.Session.ID,
					"error", err,
				)
			} else {
				forfeited++
			}
		}
		instance.mu.Unlock()
	}
	if forfeited > 0 {
		logger.Log.Infow("forfeited stale sessions", "count", forfeited)
	}
	return forfeited
}
