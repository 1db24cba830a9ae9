package games_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/games"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

func TestDefaultCatalogueCoversEveryGame(t *testing.T) {
	c, err := games.DefaultCatalogue()
	if err != nil {
		t.Fatalf("DefaultCatalogue: %v", err)
	}

	single := []models.GameType{
		models.GameTypeCoinToss, models.GameTypeColorMatch, models.GameTypeDoubleOrNothing,
		models.GameTypeRoulette, models.GameTypeHorseRacing, models.GameTypeWheelOfFortune,
		models.GameTypeSimpleWheel, models.GameTypeColorWheel, models.GameTypeTreasureChest,
		models.GameTypeBingo, models.GameTypeLuckyNumbers, models.GameTypeSlotMachine,
		models.GameTypeDiamondMine, models.GameTypeCardFlip, models.GameTypeLuckyDice,
		models.GameTypePiratePlunder, models.GameTypeNumberGuess, models.GameTypeRockPaper,
		models.GameTypeScratchCard, models.GameTypeMatchThree,
	}
	for _, gt := range single {
		if _, ok := c.Game(gt); !ok {
			t.Errorf("missing single-shot game %s", gt)
		}
	}

	sessions := []models.GameType{
		models.GameTypeBlackjack, models.GameTypeVideoPoker, models.GameTypeMinesweeper,
		models.GameTypeMines, models.GameTypeTreasureHunt, models.GameTypeHighLow,
		models.GameTypeHigherLower, models.GameTypeCrystalMaze,
	}
	for _, gt := range sessions {
		if !c.IsSession(gt) {
			t.Errorf("missing session game %s", gt)
		}
	}

	if got := len(c.Games()); got != len(single)+len(sessions) {
		t.Errorf("catalogue lists %d games, want %d", got, len(single)+len(sessions))
	}
}

func TestCatalogueRoulettePaysSingleNumber(t *testing.T) {
	c, err := games.DefaultCatalogue()
	if err != nil {
		t.Fatalf("DefaultCatalogue: %v", err)
	}
	g, _ := c.Game(models.GameTypeRoulette)

	// 37 pockets, 0.0 lands on pocket 0
	out, err := g.Play(games.NewSequence(0), 10, models.Selection{Pick: "0"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.Payout != 350 {
		t.Errorf("expected 35x, got %+v", out)
	}
}

func TestCatalogueMinesweeperLevels(t *testing.T) {
	c, err := games.DefaultCatalogue()
	if err != nil {
		t.Fatalf("DefaultCatalogue: %v", err)
	}

	s, err := c.NewSession(models.GameTypeMinesweeper, games.NewSource(1), "hard")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	gs := s.(*games.GridSession)
	if gs.Grid().Size() != 256 {
		t.Errorf("hard board should be 16x16, got %d cells", gs.Grid().Size())
	}

	if _, err := c.NewSession(models.GameTypeMinesweeper, games.NewSource(1), "insane"); !errors.Is(err, games.ErrUnknownLevel) {
		t.Errorf("expected ErrUnknownLevel, got %v", err)
	}
	if _, err := c.NewSession(models.GameTypeMines, games.NewSource(1), ""); err != nil {
		t.Errorf("single-level grid should accept an empty level: %v", err)
	}
	if _, err := c.NewSession(models.GameTypeCoinToss, games.NewSource(1), ""); !errors.Is(err, games.ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestCatalogueMatchThree(t *testing.T) {
	c, err := games.DefaultCatalogue()
	if err != nil {
		t.Fatalf("DefaultCatalogue: %v", err)
	}
	g, _ := c.Game(models.GameTypeMatchThree)

	tests := []struct {
		name   string
		draws  []float64
		result models.Result
		payout int64
	}{
		{"three of a kind", []float64{0}, models.ResultWin, 30},
		{"top symbol", []float64{0.99}, models.ResultWin, 30},
		{"mixed", []float64{0, 0.5, 0.99}, models.ResultLoss, 0},
	}
	for _, tt := range tests {
		out, err := g.Play(games.NewSequence(tt.draws...), 10, models.Selection{})
		if err != nil {
			t.Fatalf("%s: Play: %v", tt.name, err)
		}
		if out.Result != tt.result || out.Payout != tt.payout {
			t.Errorf("%s: got %+v", tt.name, out)
		}
	}
}

func TestCatalogueCrystalMaze(t *testing.T) {
	c, err := games.DefaultCatalogue()
	if err != nil {
		t.Fatalf("DefaultCatalogue: %v", err)
	}

	// Zero draws put traps in cells 0-7 and crystals in cells 8-12.
	s, err := c.NewSession(models.GameTypeCrystalMaze, games.NewSequence(0), "")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	gs := s.(*games.GridSession)
	if gs.Grid().Size() != 64 {
		t.Errorf("maze should be 8x8, got %d cells", gs.Grid().Size())
	}

	for cell := 8; cell < 12; cell++ {
		if err := s.Apply(models.Action{Kind: models.ActionReveal, Cell: cell}); err != nil {
			t.Fatalf("reveal %d: %v", cell, err)
		}
		if s.Finished() {
			t.Fatalf("round ended with crystals left after cell %d", cell)
		}
	}
	if err := s.Apply(models.Action{Kind: models.ActionReveal, Cell: 12}); err != nil {
		t.Fatalf("reveal 12: %v", err)
	}
	if out := s.Outcome(10); out.Result != models.ResultWin || out.Payout != 30 {
		t.Errorf("collecting every crystal should pay 3x, got %+v", out)
	}

	trapped, err := c.NewSession(models.GameTypeCrystalMaze, games.NewSequence(0), "classic")
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := trapped.Apply(models.Action{Kind: models.ActionReveal, Cell: 0}); err != nil {
		t.Fatalf("reveal 0: %v", err)
	}
	if !trapped.Finished() || trapped.Outcome(10).Result != models.ResultLoss {
		t.Errorf("a trap should lose, got %+v", trapped.Outcome(10))
	}
}

const skewedWheel = `
version: 1
games:
  wonky_wheel:
    kind: wheel
    segments:
      - {label: a, weight: 0.5, multiplier: 2}
      - {label: b, weight: 0.7, multiplier: 3}
`

func TestStrictCatalogueRejectsSkewedWeights(t *testing.T) {
	if _, err := games.ParseCatalogue([]byte(skewedWheel), true); !errors.Is(err, games.ErrInvalidTable) {
		t.Errorf("strict mode should reject weights summing to 1.2, got %v", err)
	}

	c, err := games.ParseCatalogue([]byte(skewedWheel), false)
	if err != nil {
		t.Fatalf("lenient mode should normalise: %v", err)
	}
	g, _ := c.Game("wonky_wheel")
	// normalised boundary sits at 0.5/1.2
	out, _ := g.Play(games.NewSequence(0.45), 10, models.Selection{})
	if out.Payout != 30 {
		t.Errorf("0.45 falls in the normalised second segment, got %+v", out)
	}
}

func TestLoadCatalogueFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paytable.yaml")
	if err := os.WriteFile(path, []byte(skewedWheel), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := games.LoadCatalogue(path, false)
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	if _, ok := c.Game("wonky_wheel"); !ok {
		t.Error("expected the file's game to be loaded")
	}

	if _, err := games.LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseCatalogueRejectsUnknownKind(t *testing.T) {
	data := []byte("games:\n  odd:\n    kind: lottery\n")
	if _, err := games.ParseCatalogue(data, false); !errors.Is(err, games.ErrInvalidTable) {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}
