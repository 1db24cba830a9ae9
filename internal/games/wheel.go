package games

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

type Segment struct {
	Label      string          `json:"label"`
	Weight     float64         `json:"weight"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Wheel maps a uniform draw onto contiguous segments. Segment i covers
// [cumulative[i-1], cumulative[i]); lower bound inclusive, upper exclusive.
type Wheel struct {
	segments   []Segment
	cumulative []float64
}

// NewWheel normalises weights so they sum to 1. Negative weights or a
// non-positive total are rejected.
func NewWheel(segments []Segment) (*Wheel, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: wheel has no segments", ErrInvalidTable)
	}

	total := 0.0
	for _, s := range segments {
		if s.Weight < 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
			return nil, fmt.Errorf("%w: segment %q has weight %v", ErrInvalidTable, s.Label, s.Weight)
		}
		total += s.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: wheel weights sum to %v", ErrInvalidTable, total)
	}

	w := &Wheel{
		segments:   append([]Segment(nil), segments...),
		cumulative: make([]float64, len(segments)),
	}
	acc := 0.0
	for i, s := range segments {
		acc += s.Weight / total
		w.cumulative[i] = acc
	}
	w.cumulative[len(segments)-1] = 1
	return w, nil
}

// WeightSum reports the raw sum of a table's weights.
func WeightSum(segments []Segment) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.Weight
	}
	return total
}

// Index returns the segment containing u.
func (w *Wheel) Index(u float64) int {
	u = clampUnit(u)
	i := sort.Search(len(w.cumulative), func(i int) bool {
		return u < w.cumulative[i]
	})
	if i >= len(w.cumulative) {
		i = len(w.cumulative) - 1
	}
	return i
}

func (w *Wheel) Spin(src Source) (int, Segment) {
	i := w.Index(src.Float64())
	return i, w.segments[i]
}

func (w *Wheel) Segments() []Segment {
	return append([]Segment(nil), w.segments...)
}

// WheelGame pays the multiplier of the segment the wheel lands on. With
// PickSegment set the player must name a segment and only wins when the
// wheel lands on it.
type WheelGame struct {
	Wheel       *Wheel
	PickSegment bool
}

type WheelDetail struct {
	Pick   string `json:"pick,omitempty"`
	Index  int    `json:"index"`
	Landed string `json:"landed"`
}

func (g *WheelGame) Play(src Source, stake int64, sel models.Selection) (models.Outcome, error) {
	if g.PickSegment && !g.hasLabel(sel.Pick) {
		return models.Outcome{}, fmt.Errorf("%w: unknown segment %q", ErrInvalidSelection, sel.Pick)
	}

	i, seg := g.Wheel.Spin(src)
	detail := WheelDetail{Index: i, Landed: seg.Label}
	if g.PickSegment {
		detail.Pick = sel.Pick
		if seg.Label != sel.Pick {
			return Loss(detail), nil
		}
	}
	return Win(stake, seg.Multiplier, detail), nil
}

func (g *WheelGame) hasLabel(label string) bool {
	for _, s := range g.Wheel.segments {
		if s.Label == label {
			return true
		}
	}
	return false
}
