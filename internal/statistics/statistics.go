package statistics

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// SessionOutcome represents the result of a single simulated session
type SessionOutcome struct {
	Seed       int64  // RNG seed for this session (for replay)
	Winner     string // empty when the hand limit stopped the session
	Hands      int    // hands played
	Showdowns  int    // hands decided between two or more players
	LargestPot int    // largest pot awarded, in chips
}

// Completed reports whether a single player ended with every chip
func (o SessionOutcome) Completed() bool {
	return o.Winner != ""
}

// Statistics aggregates session outcomes. The moments describe the number
// of hands a session lasts.
type Statistics struct {
	Sessions  int
	SumHands  float64
	SumHands2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	Wins       map[string]int
	Unfinished int // sessions stopped by the hand limit

	TotalHands    int
	ShowdownHands int
	MaxPot        int
	MaxPotSeed    int64 // session that produced MaxPot
}

// Mean returns the mean number of hands per session
func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumHands / float64(s.Sessions)
}

// Variance returns the sample variance of session length
func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumHands2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

// StdDev returns the sample standard deviation of session length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a session outcome into the statistics
func (s *Statistics) Add(o SessionOutcome) {
	hands := float64(o.Hands)
	s.Sessions++
	s.SumHands += hands
	s.SumHands2 += hands * hands
	s.Values = append(s.Values, hands)

	if s.Wins == nil {
		s.Wins = make(map[string]int)
	}
	if o.Completed() {
		s.Wins[o.Winner]++
	} else {
		s.Unfinished++
	}

	s.TotalHands += o.Hands
	s.ShowdownHands += o.Showdowns
	if o.LargestPot > s.MaxPot {
		s.MaxPot = o.LargestPot
		s.MaxPotSeed = o.Seed
	}
}

// Median returns the median session length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the session length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of sessions the named player won
func (s *Statistics) WinRate(name string) float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Wins[name]) / float64(s.Sessions)
}

// ShowdownRate returns the share of hands decided at a showdown
func (s *Statistics) ShowdownRate() float64 {
	if s.TotalHands == 0 {
		return 0
	}
	return float64(s.ShowdownHands) / float64(s.TotalHands)
}

// PlayerWins is one row of the leaderboard
type PlayerWins struct {
	Name string
	Wins int
}

// Leaderboard returns players by wins, most first, ties by name
func (s *Statistics) Leaderboard() []PlayerWins {
	rows := make([]PlayerWins, 0, len(s.Wins))
	for name, wins := range s.Wins {
		rows = append(rows, PlayerWins{Name: name, Wins: wins})
	}
	slices.SortFunc(rows, func(a, b PlayerWins) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rows
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}

	if len(s.Values) != s.Sessions {
		return fmt.Errorf("values array length (%d) does not match sessions count (%d)",
			len(s.Values), s.Sessions)
	}

	totalWins := s.Unfinished
	for _, wins := range s.Wins {
		totalWins += wins
	}
	if totalWins != s.Sessions {
		return fmt.Errorf("wins plus unfinished (%d) does not match sessions (%d)", totalWins, s.Sessions)
	}

	if s.ShowdownHands > s.TotalHands {
		return fmt.Errorf("showdown hands (%d) exceeds total hands (%d)", s.ShowdownHands, s.TotalHands)
	}

	return nil
}
