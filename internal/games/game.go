package games

import (
	"errors"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

// Game resolves a single-shot round.
type Game interface {
	Play(src Source, stake int64, sel models.Selection) (models.Outcome, error)
}

// CheckSelection rejects a selection the game would refuse. Generators are
// pure, so a dry run against a fixed source moves nothing.
func CheckSelection(g Game, stake int64, sel models.Selection) error {
	if _, err := g.Play(NewSequence(0), stake, sel); errors.Is(err, ErrInvalidSelection) {
		return err
	}
	return nil
}
