package games

import (
	"errors"
	"fmt"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

var (
	ErrSessionOver       = errors.New("round already finished")
	ErrUnsupportedAction = errors.New("unsupported action")
)

// Session is a multi-step round. The stake is committed before the session
// starts; Outcome is only meaningful once Finished reports true.
type Session interface {
	Apply(action models.Action) error
	Finished() bool
	// Forfeit completes an abandoned round with the game's default play.
	Forfeit()
	Outcome(stake int64) models.Outcome
	View() any
}

func unsupported(kind models.ActionKind) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedAction, kind)
}
