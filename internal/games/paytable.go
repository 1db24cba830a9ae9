package games

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/logger"
	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

//go:embed paytable.yaml
var defaultPaytable []byte

var (
	ErrUnknownGame  = errors.New("unknown game type")
	ErrUnknownLevel = errors.New("unknown level")
)

const weightTolerance = 1e-6

type paytableFile struct {
	Version int                 `yaml:"version"`
	Games   map[string]gameSpec `yaml:"games"`
}

type gameSpec struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Multiplier float64 `yaml:"multiplier"`

	Options  []optionSpec `yaml:"options"`
	Range    *rangeSpec   `yaml:"range"`
	AutoPick string       `yaml:"auto_pick"`

	Segments    []segmentSpec `yaml:"segments"`
	PickSegment bool          `yaml:"pick_segment"`

	Universe int             `yaml:"universe"`
	Picks    int             `yaml:"picks"`
	Draws    int             `yaml:"draws"`
	Unique   bool            `yaml:"unique"`
	Schedule map[int]float64 `yaml:"schedule"`

	Symbols     []symbolSpec `yaml:"symbols"`
	Reels       int          `yaml:"reels"`
	AllDistinct float64      `yaml:"all_distinct"`
	Straight    float64      `yaml:"straight"`

	Chances map[string]chanceSpec `yaml:"chances"`

	Min       int `yaml:"min"`
	Max       int `yaml:"max"`
	Tolerance int `yaml:"tolerance"`

	Tiers  map[string]tierSpec `yaml:"tiers"`
	Hands  map[string]float64  `yaml:"hands"`
	Levels map[string]gridSpec `yaml:"levels"`

	Steps      []float64 `yaml:"steps"`
	Base       float64   `yaml:"base"`
	Increment  float64   `yaml:"increment"`
	MaxGuesses int       `yaml:"max_guesses"`
}

type optionSpec struct {
	Label      string  `yaml:"label"`
	Multiplier float64 `yaml:"multiplier"`
}

type rangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type segmentSpec struct {
	Label      string  `yaml:"label"`
	Weight     float64 `yaml:"weight"`
	Multiplier float64 `yaml:"multiplier"`
}

type symbolSpec struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
}

type chanceSpec struct {
	Probability float64 `yaml:"probability"`
	Multiplier  float64 `yaml:"multiplier"`
}

type tierSpec struct {
	Price     int64     `yaml:"price"`
	Cells     int       `yaml:"cells"`
	Scratches int       `yaml:"scratches"`
	Prizes    []float64 `yaml:"prizes"`
}

type gridSpec struct {
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Hazards     int       `yaml:"hazards"`
	Rewards     int       `yaml:"rewards"`
	Cascade     bool      `yaml:"cascade"`
	WinOnReward bool      `yaml:"win_on_reward"`
	Ladder      []float64 `yaml:"ladder"`
}

type sessionFactory func(src Source, level string) (Session, error)

type GameInfo struct {
	Type    models.GameType `json:"type"`
	Name    string          `json:"name"`
	Kind    string          `json:"kind"`
	Session bool            `json:"session"`
	Levels  []string        `json:"levels,omitempty"`
	Options []string        `json:"options,omitempty"`
}

// Catalogue maps game types to their generators. It is immutable once
// built and safe to share.
type Catalogue struct {
	games    map[models.GameType]Game
	sessions map[models.GameType]sessionFactory
	info     []GameInfo
}

func DefaultCatalogue() (*Catalogue, error) {
	return ParseCatalogue(defaultPaytable, false)
}

// LoadCatalogue reads odds tables from path, or the built-in tables when
// path is empty. In strict mode malformed weights fail instead of being
// normalised.
func LoadCatalogue(path string, strict bool) (*Catalogue, error) {
	if path == "" {
		return ParseCatalogue(defaultPaytable, strict)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read paytable: %w", err)
	}
	return ParseCatalogue(data, strict)
}

func ParseCatalogue(data []byte, strict bool) (*Catalogue, error) {
	var file paytableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse paytable: %w", err)
	}
	if len(file.Games) == 0 {
		return nil, fmt.Errorf("%w: no games defined", ErrInvalidTable)
	}

	c := &Catalogue{
		games:    make(map[models.GameType]Game),
		sessions: make(map[models.GameType]sessionFactory),
	}
	for key, spec := range file.Games {
		t := models.GameType(key)
		if err := c.add(t, spec, strict); err != nil {
			return nil, fmt.Errorf("game %s: %w", key, err)
		}
	}
	sort.Slice(c.info, func(i, j int) bool { return c.info[i].Type < c.info[j].Type })
	return c, nil
}

func (c *Catalogue) add(t models.GameType, spec gameSpec, strict bool) error {
	info := GameInfo{Type: t, Name: spec.Name, Kind: spec.Kind}
	if info.Name == "" {
		info.Name = string(t)
	}

	switch spec.Kind {
	case "choice":
		g, err := buildChoice(spec)
		if err != nil {
			return err
		}
		for _, o := range g.Options {
			info.Options = append(info.Options, o.Label)
		}
		c.games[t] = g
	case "wheel":
		g, err := buildWheel(t, spec, strict)
		if err != nil {
			return err
		}
		if g.PickSegment {
			for _, s := range g.Wheel.segments {
				info.Options = append(info.Options, s.Label)
			}
		}
		c.games[t] = g
	case "match":
		g := &MatchDraw{
			Universe: spec.Universe,
			Picks:    spec.Picks,
			Draws:    spec.Draws,
			Unique:   spec.Unique,
			Schedule: make(map[int]decimal.Decimal, len(spec.Schedule)),
		}
		for n, m := range spec.Schedule {
			g.Schedule[n] = mult(m)
		}
		if err := g.Validate(); err != nil {
			return err
		}
		c.games[t] = g
	case "reels":
		g := &ReelGame{
			Reels:       spec.Reels,
			AllDistinct: mult(spec.AllDistinct),
			Straight:    mult(spec.Straight),
		}
		for _, s := range spec.Symbols {
			g.Symbols = append(g.Symbols, ReelSymbol{Name: s.Name, Multiplier: mult(s.Multiplier)})
		}
		if err := g.Validate(); err != nil {
			return err
		}
		c.games[t] = g
	case "chance":
		g := &ChanceGame{Options: make(map[string]Chance, len(spec.Chances))}
		for label, ch := range spec.Chances {
			if ch.Probability < 0 || ch.Probability > 1 {
				return fmt.Errorf("%w: probability %v for %q", ErrInvalidTable, ch.Probability, label)
			}
			g.Options[label] = Chance{Probability: ch.Probability, Multiplier: mult(ch.Multiplier)}
			info.Options = append(info.Options, label)
		}
		sort.Strings(info.Options)
		c.games[t] = g
	case "proximity":
		if spec.Max <= spec.Min {
			return fmt.Errorf("%w: range %d..%d", ErrInvalidTable, spec.Min, spec.Max)
		}
		c.games[t] = &ProximityGame{
			Min:        spec.Min,
			Max:        spec.Max,
			Tolerance:  spec.Tolerance,
			Multiplier: mult(spec.Multiplier),
		}
	case "rps":
		c.games[t] = &RockPaperScissors{Multiplier: mult(spec.Multiplier)}
		info.Options = append(info.Options, rpsMoves...)
	case "scratch":
		g, err := buildScratch(spec)
		if err != nil {
			return err
		}
		for name := range g.Tiers {
			info.Options = append(info.Options, name)
		}
		sort.Strings(info.Options)
		c.games[t] = g
	case "blackjack":
		m := mult(spec.Multiplier)
		c.sessions[t] = func(src Source, _ string) (Session, error) {
			return NewBlackjack(src, m), nil
		}
		info.Session = true
	case "video_poker":
		table := make(map[HandRank]decimal.Decimal, len(spec.Hands))
		for name, m := range spec.Hands {
			rank, ok := ParseHandRank(name)
			if !ok || rank == NoWin {
				return fmt.Errorf("%w: unknown hand %q", ErrInvalidTable, name)
			}
			table[rank] = mult(m)
		}
		c.sessions[t] = func(src Source, _ string) (Session, error) {
			return NewVideoPoker(src, table), nil
		}
		info.Session = true
	case "grid":
		factory, levels, err := buildGrid(spec)
		if err != nil {
			return err
		}
		c.sessions[t] = factory
		info.Session = true
		info.Levels = levels
	case "ladder":
		rules := LadderRules{
			Min:        spec.Min,
			Max:        spec.Max,
			Base:       mult(spec.Base),
			Increment:  mult(spec.Increment),
			MaxGuesses: spec.MaxGuesses,
		}
		for _, s := range spec.Steps {
			rules.Steps = append(rules.Steps, mult(s))
		}
		if rules.Max <= rules.Min {
			return fmt.Errorf("%w: ladder range %d..%d", ErrInvalidTable, rules.Min, rules.Max)
		}
		c.sessions[t] = func(src Source, _ string) (Session, error) {
			s, err := NewLadderSession(src, rules)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
		info.Session = true
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTable, spec.Kind)
	}

	c.info = append(c.info, info)
	return nil
}

func buildChoice(spec gameSpec) (*ChoiceGame, error) {
	g := &ChoiceGame{AutoPick: spec.AutoPick}
	for _, o := range spec.Options {
		m := o.Multiplier
		if m == 0 {
			m = spec.Multiplier
		}
		g.Options = append(g.Options, Option{Label: o.Label, Multiplier: mult(m)})
	}
	if spec.Range != nil {
		for n := spec.Range.Min; n <= spec.Range.Max; n++ {
			g.Options = append(g.Options, Option{Label: strconv.Itoa(n), Multiplier: mult(spec.Multiplier)})
		}
	}
	if len(g.Options) < 2 {
		return nil, fmt.Errorf("%w: a choice needs at least two options", ErrInvalidTable)
	}
	return g, nil
}

func buildWheel(t models.GameType, spec gameSpec, strict bool) (*WheelGame, error) {
	segments := make([]Segment, 0, len(spec.Segments))
	explicit := false
	for _, s := range spec.Segments {
		if s.Weight != 0 {
			explicit = true
		}
		segments = append(segments, Segment{Label: s.Label, Weight: s.Weight, Multiplier: mult(s.Multiplier)})
	}
	if !explicit {
		for i := range segments {
			segments[i].Weight = 1
		}
	} else if sum := WeightSum(segments); math.Abs(sum-1) > weightTolerance {
		if strict {
			return nil, fmt.Errorf("%w: weights sum to %v", ErrInvalidTable, sum)
		}
		logger.Log.Warnw("normalising wheel weights", "game", t, "sum", sum)
	}

	w, err := NewWheel(segments)
	if err != nil {
		return nil, err
	}
	return &WheelGame{Wheel: w, PickSegment: spec.PickSegment}, nil
}

func buildScratch(spec gameSpec) (*ScratchGame, error) {
	g := &ScratchGame{Tiers: make(map[string]ScratchTier, len(spec.Tiers))}
	for name, ts := range spec.Tiers {
		if ts.Price <= 0 || ts.Cells <= 0 || ts.Scratches <= 0 || ts.Scratches > ts.Cells || len(ts.Prizes) == 0 {
			return nil, fmt.Errorf("%w: scratch tier %q", ErrInvalidTable, name)
		}
		tier := ScratchTier{Price: ts.Price, Cells: ts.Cells, Scratches: ts.Scratches}
		for _, p := range ts.Prizes {
			tier.Prizes = append(tier.Prizes, mult(p))
		}
		g.Tiers[name] = tier
	}
	if len(g.Tiers) == 0 {
		return nil, fmt.Errorf("%w: no scratch tiers", ErrInvalidTable)
	}
	return g, nil
}

func buildGrid(spec gameSpec) (sessionFactory, []string, error) {
	if len(spec.Levels) == 0 {
		return nil, nil, fmt.Errorf("%w: grid needs at least one level", ErrInvalidTable)
	}

	rules := make(map[string]GridRules, len(spec.Levels))
	levels := make([]string, 0, len(spec.Levels))
	for name, ls := range spec.Levels {
		r := GridRules{
			Width:       ls.Width,
			Height:      ls.Height,
			Hazards:     ls.Hazards,
			Rewards:     ls.Rewards,
			Cascade:     ls.Cascade,
			WinOnReward: ls.WinOnReward,
			Multiplier:  mult(spec.Multiplier),
		}
		for _, m := range ls.Ladder {
			r.Ladder = append(r.Ladder, mult(m))
		}
		size := r.Width * r.Height
		if r.Width <= 0 || r.Height <= 0 || r.Hazards+r.Rewards >= size {
			return nil, nil, fmt.Errorf("%w: level %q", ErrInvalidTable, name)
		}
		rules[name] = r
		levels = append(levels, name)
	}
	sort.Strings(levels)

	factory := func(src Source, level string) (Session, error) {
		if level == "" && len(levels) == 1 {
			level = levels[0]
		}
		r, ok := rules[level]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
		}
		s, err := NewGridSession(src, r)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return factory, levels, nil
}

func (c *Catalogue) Game(t models.GameType) (Game, bool) {
	g, ok := c.games[t]
	return g, ok
}

func (c *Catalogue) IsSession(t models.GameType) bool {
	_, ok := c.sessions[t]
	return ok
}

func (c *Catalogue) NewSession(t models.GameType, src Source, level string) (Session, error) {
	factory, ok := c.sessions[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, t)
	}
	return factory(src, level)
}

func (c *Catalogue) Games() []GameInfo {
	return append([]GameInfo(nil), c.info...)
}
