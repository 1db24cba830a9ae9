package games

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

var ErrCellRevealed = errors.New("cell already revealed")

type CellKind int

const (
	CellEmpty CellKind = iota
	CellHazard
	CellReward
)

func (k CellKind) String() string {
	switch k {
	case CellHazard:
		return "hazard"
	case CellReward:
		return "reward"
	}
	return "empty"
}

// Grid is a width×height board with hazards and rewards placed without
// overlap. Cells are addressed row-major.
type Grid struct {
	width, height int
	cells         []CellKind
	revealed      []bool
	adjacent      []int
	hazards       int
	rewards       int
	cascade       bool
	safeRevealed  int
	rewardsFound  int
}

func NewGrid(src Source, width, height, hazards, rewards int, cascade bool) (*Grid, error) {
	size := width * height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidTable, width, height)
	}
	if hazards < 0 || rewards < 0 || hazards+rewards >= size {
		return nil, fmt.Errorf("%w: %d hazards and %d rewards do not fit %d cells", ErrInvalidTable, hazards, rewards, size)
	}

	g := &Grid{
		width:    width,
		height:   height,
		cells:    make([]CellKind, size),
		revealed: make([]bool, size),
		adjacent: make([]int, size),
		hazards:  hazards,
		rewards:  rewards,
		cascade:  cascade,
	}

	positions := make([]int, size)
	for i := range positions {
		positions[i] = i
	}
	placed := hazards + rewards
	for i := 0; i < placed; i++ {
		j := i + Intn(src, size-i)
		positions[i], positions[j] = positions[j], positions[i]
	}
	for i := 0; i < hazards; i++ {
		g.cells[positions[i]] = CellHazard
	}
	for i := hazards; i < placed; i++ {
		g.cells[positions[i]] = CellReward
	}

	for i, kind := range g.cells {
		if kind != CellHazard {
			continue
		}
		for _, n := range g.neighbors(i) {
			g.adjacent[n]++
		}
	}
	return g, nil
}

func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) Kind(cell int) CellKind {
	return g.cells[cell]
}

func (g *Grid) Adjacent(cell int) int {
	return g.adjacent[cell]
}

func (g *Grid) Revealed(cell int) bool {
	return g.revealed[cell]
}

func (g *Grid) SafeRevealed() int {
	return g.safeRevealed
}

func (g *Grid) SafeRemaining() int {
	return len(g.cells) - g.hazards - g.safeRevealed
}

func (g *Grid) RewardsRemaining() int {
	return g.rewards - g.rewardsFound
}

func (g *Grid) neighbors(cell int) []int {
	x, y := cell%g.width, cell/g.width
	out := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= g.width || ny >= g.height {
				continue
			}
			out = append(out, ny*g.width+nx)
		}
	}
	return out
}

// Reveal uncovers a cell and returns every cell uncovered by the move. With
// cascade enabled, empty cells with no adjacent hazards flood outwards using
// an explicit work-list.
func (g *Grid) Reveal(cell int) ([]int, error) {
	if cell < 0 || cell >= len(g.cells) {
		return nil, fmt.Errorf("%w: cell %d outside grid", ErrInvalidSelection, cell)
	}
	if g.revealed[cell] {
		return nil, ErrCellRevealed
	}

	opened := []int{cell}
	g.open(cell)
	if g.cells[cell] != CellEmpty || !g.cascade || g.adjacent[cell] != 0 {
		return opened, nil
	}

	work := []int{cell}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, n := range g.neighbors(cur) {
			if g.revealed[n] || g.cells[n] != CellEmpty {
				continue
			}
			g.open(n)
			opened = append(opened, n)
			if g.adjacent[n] == 0 {
				work = append(work, n)
			}
		}
	}
	return opened, nil
}

func (g *Grid) open(cell int) {
	g.revealed[cell] = true
	switch g.cells[cell] {
	case CellHazard:
		return
	case CellReward:
		g.rewardsFound++
	}
	g.safeRevealed++
}

type GridRules struct {
	Width   int
	Height  int
	Hazards int
	Rewards int
	Cascade bool
	// WinOnReward ends the round once every reward cell is found.
	WinOnReward bool
	Multiplier  decimal.Decimal
	// Ladder enables cash-out; entry k-1 is the multiplier after k safe
	// reveals.
	Ladder []decimal.Decimal
}

type GridSession struct {
	grid   *Grid
	rules  GridRules
	done   bool
	result models.Result
	paid   decimal.Decimal
}

type CellView struct {
	Revealed bool   `json:"revealed"`
	Kind     string `json:"kind,omitempty"`
	Adjacent int    `json:"adjacent,omitempty"`
}

type GridView struct {
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Cells        []CellView      `json:"cells"`
	SafeRevealed int             `json:"safeRevealed"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	Done         bool            `json:"done"`
	Result       models.Result   `json:"result,omitempty"`
}

func NewGridSession(src Source, rules GridRules) (*GridSession, error) {
	g, err := NewGrid(src, rules.Width, rules.Height, rules.Hazards, rules.Rewards, rules.Cascade)
	if err != nil {
		return nil, err
	}
	return &GridSession{grid: g, rules: rules}, nil
}

func (s *GridSession) Grid() *Grid {
	return s.grid
}

func (s *GridSession) Apply(a models.Action) error {
	if s.done {
		return ErrSessionOver
	}
	switch a.Kind {
	case models.ActionReveal:
		return s.reveal(a.Cell)
	case models.ActionCashout:
		if len(s.rules.Ladder) == 0 {
			return unsupported(a.Kind)
		}
		s.cashout()
		return nil
	}
	return unsupported(a.Kind)
}

func (s *GridSession) reveal(cell int) error {
	if _, err := s.grid.Reveal(cell); err != nil {
		return err
	}

	switch {
	case s.grid.Kind(cell) == CellHazard:
		s.finish(models.ResultLoss, decimal.Zero)
	case s.rules.WinOnReward && s.grid.RewardsRemaining() == 0:
		s.finish(models.ResultWin, s.rules.Multiplier)
	case s.grid.SafeRemaining() == 0:
		if len(s.rules.Ladder) > 0 {
			s.finish(models.ResultWin, s.ladderAt(s.grid.SafeRevealed()))
		} else {
			s.finish(models.ResultWin, s.rules.Multiplier)
		}
	}
	return nil
}

func (s *GridSession) cashout() {
	n := s.grid.SafeRevealed()
	if n == 0 {
		s.finish(models.ResultPush, decimal.NewFromInt(1))
		return
	}
	s.finish(models.ResultWin, s.ladderAt(n))
}

func (s *GridSession) ladderAt(n int) decimal.Decimal {
	switch {
	case n <= 0:
		return decimal.NewFromInt(1)
	case n > len(s.rules.Ladder):
		return s.rules.Ladder[len(s.rules.Ladder)-1]
	}
	return s.rules.Ladder[n-1]
}

func (s *GridSession) finish(r models.Result, m decimal.Decimal) {
	s.done = true
	s.result = r
	s.paid = m
}

func (s *GridSession) Finished() bool {
	return s.done
}

// Forfeit cashes out when the game allows it and otherwise loses.
func (s *GridSession) Forfeit() {
	if s.done {
		return
	}
	if len(s.rules.Ladder) > 0 {
		s.cashout()
		return
	}
	s.finish(models.ResultLoss, decimal.Zero)
}

func (s *GridSession) Outcome(stake int64) models.Outcome {
	view := s.View()
	switch s.result {
	case models.ResultWin:
		return Win(stake, s.paid, view)
	case models.ResultPush:
		return Push(stake, view)
	}
	return Loss(view)
}

func (s *GridSession) View() any {
	v := GridView{
		Width:        s.grid.width,
		Height:       s.grid.height,
		Cells:        make([]CellView, s.grid.Size()),
		SafeRevealed: s.grid.SafeRevealed(),
		Multiplier:   s.paid,
		Done:         s.done,
		Result:       s.result,
	}
	if !s.done && len(s.rules.Ladder) > 0 {
		v.Multiplier = s.ladderAt(s.grid.SafeRevealed())
	}
	for i := range v.Cells {
		if !s.grid.revealed[i] && !s.done {
			continue
		}
		v.Cells[i] = CellView{
			Revealed: s.grid.revealed[i],
			Kind:     s.grid.cells[i].String(),
			Adjacent: s.grid.adjacent[i],
		}
	}
	return v
}
