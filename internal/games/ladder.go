package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

// LadderRules describe a guess-the-next-value round. Each correct guess
// climbs one rung; a wrong guess (a tie counts as wrong) loses the stake.
type LadderRules struct {
	Min int
	Max int
	// Steps lists the multiplier after k correct guesses at index k-1.
	// When empty the multiplier is Base + Increment*k.
	Steps     []decimal.Decimal
	Base      decimal.Decimal
	Increment decimal.Decimal
	// MaxGuesses settles the round automatically; 0 means unlimited.
	MaxGuesses int
}

type LadderSession struct {
	src     Source
	rules   LadderRules
	current int
	history []int
	correct int
	done    bool
	result  models.Result
}

type LadderView struct {
	Current    int             `json:"current"`
	History    []int           `json:"history"`
	Correct    int             `json:"correct"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Done       bool            `json:"done"`
	Result     models.Result   `json:"result,omitempty"`
}

func NewLadderSession(src Source, rules LadderRules) (*LadderSession, error) {
	if rules.Max <= rules.Min {
		return nil, fmt.Errorf("%w: ladder range %d..%d", ErrInvalidTable, rules.Min, rules.Max)
	}
	s := &LadderSession{src: src, rules: rules}
	s.current = IntRange(src, rules.Min, rules.Max)
	s.history = []int{s.current}
	return s, nil
}

func (s *LadderSession) Multiplier() decimal.Decimal {
	k := s.correct
	if k == 0 {
		return decimal.NewFromInt(1)
	}
	if len(s.rules.Steps) > 0 {
		if k > len(s.rules.Steps) {
			k = len(s.rules.Steps)
		}
		return s.rules.Steps[k-1]
	}
	return s.rules.Base.Add(s.rules.Increment.Mul(decimal.NewFromInt(int64(k))))
}

func (s *LadderSession) Apply(a models.Action) error {
	if s.done {
		return ErrSessionOver
	}
	switch a.Kind {
	case models.ActionGuess:
		s.guess(a.Higher)
	case models.ActionCashout:
		s.cashout()
	default:
		return unsupported(a.Kind)
	}
	return nil
}

func (s *LadderSession) guess(higher bool) {
	next := IntRange(s.src, s.rules.Min, s.rules.Max)
	right := (higher && next > s.current) || (!higher && next < s.current)
	s.current = next
	s.history = append(s.history, next)

	if !right {
		s.done = true
		s.result = models.ResultLoss
		return
	}
	s.correct++
	if s.rules.MaxGuesses > 0 && s.correct >= s.rules.MaxGuesses {
		s.done = true
		s.result = models.ResultWin
	}
}

func (s *LadderSession) cashout() {
	s.done = true
	if s.correct == 0 {
		s.result = models.ResultPush
		return
	}
	s.result = models.ResultWin
}

func (s *LadderSession) Finished() bool {
	return s.done
}

func (s *LadderSession) Forfeit() {
	if !s.done {
		s.cashout()
	}
}

func (s *LadderSession) Outcome(stake int64) models.Outcome {
	view := s.View()
	switch s.result {
	case models.ResultWin:
		return Win(stake, s.Multiplier(), view)
	case models.ResultPush:
		return Push(stake, view)
	}
	return Loss(view)
}

func (s *LadderSession) View() any {
	return LadderView{
		Current:    s.current,
		History:    append([]int(nil), s.history...),
		Correct:    s.correct,
		Multiplier: s.Multiplier(),
		Done:       s.done,
		Result:     s.result,
	}
}
