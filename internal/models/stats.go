package models

type GameStats struct {
	Played   int64 `json:"played"`
	Wins     int64 `json:"wins"`
	Losses   int64 `json:"losses"`
	Pushes   int64 `json:"pushes"`
	Winnings int64 `json:"winnings"`
	Lost     int64 `json:"lost"`
}

// Stats holds lifetime counters. Every counter only grows except Streak,
// which counts consecutive wins.
type Stats struct {
	GamesPlayed   int64 `json:"gamesPlayed"`
	Wins          int64 `json:"wins"`
	Losses        int64 `json:"losses"`
	Pushes        int64 `json:"pushes"`
	Streak        int64 `json:"streak"`
	TotalWinnings int64 `json:"totalWinnings"`
	TotalLosses   int64 `json:"totalLosses"`
	BiggestWin    int64 `json:"biggestWin"`

	Games map[GameType]GameStats `json:"games"`
}

func NewStats() Stats {
	return Stats{Games: make(map[GameType]GameStats)}
}

func (s Stats) Clone() Stats {
	c := s
	c.Games = make(map[GameType]GameStats, len(s.Games))
	for k, v := range s.Games {
		c.Games[k] = v
	}
	return c
}

func (s *Stats) RecordWin(game GameType, amount int64) {
	s.GamesPlayed++
	s.Wins++
	s.Streak++
	s.TotalWinnings += amount
	if amount > s.BiggestWin {
		s.BiggestWin = amount
	}
	s.bucket(game, func(g *GameStats) {
		g.Wins++
		g.Winnings += amount
	})
}

func (s *Stats) RecordLoss(game GameType, amount int64) {
	s.GamesPlayed++
	s.Losses++
	s.Streak = 0
	s.TotalLosses += amount
	s.bucket(game, func(g *GameStats) {
		g.Losses++
		g.Lost += amount
	})
}

func (s *Stats) RecordPush(game GameType) {
	s.GamesPlayed++
	s.Pushes++
	s.bucket(game, func(g *GameStats) {
		g.Pushes++
	})
}

func (s *Stats) bucket(game GameType, fn func(*GameStats)) {
	if game == "" {
		return
	}
	if s.Games == nil {
		s.Games = make(map[GameType]GameStats)
	}
	g := s.Games[game]
	g.Played++
	fn(&g)
	s.Games[game] = g
}
