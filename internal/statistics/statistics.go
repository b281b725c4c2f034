// Package statistics aggregates blackjack results across rounds, seats and
// tables.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the settlement of a single player hand
type HandResult struct {
	Seat       int
	Outcome    game.Outcome
	Bet        uint
	Net        int64 // chips won or lost
	Value      int   // final player total
	DealerBust bool
}

// FromResult converts a settled round result
func FromResult(r game.Result) HandResult {
	return HandResult{
		Seat:       r.Seat,
		Outcome:    r.Outcome,
		Bet:        r.Bet,
		Net:        r.Net,
		Value:      r.PlayerValue,
		DealerBust: r.DealerValue > 21,
	}
}

// Units returns the net result in bets (a won hand is +1, a blackjack +1.5)
func (r HandResult) Units() float64 {
	if r.Bet == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Bet)
}

// SeatStats tracks statistics for one seat
type SeatStats struct {
	Hands    int
	SumUnits float64
	Net      int64
}

// Statistics tracks blackjack simulation results. Means and variances are in
// units of one bet per hand.
type Statistics struct {
	Hands     int
	SumUnits  float64
	SumUnits2 float64   // sum of squares for variance
	Values    []float64 // every result, for median and percentiles

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int // player hands over 21
	DealerWins int // hands lost to a dealer that did not bust

	Wagered int64
	Net     int64 // player net chips; the house gained -Net

	// chips by outcome, summing to Net
	WonChips       int64
	BlackjackChips int64
	LostChips      int64

	SeatResults [game.MaxPlayers]SeatStats
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	units := result.Units()
	s.Hands++
	s.SumUnits += units
	s.SumUnits2 += units * units
	s.Values = append(s.Values, units)

	s.Wagered += int64(result.Bet)
	s.Net += result.Net

	switch result.Outcome {
	case game.Won:
		s.Wins++
		s.WonChips += result.Net
	case game.Blackjack:
		s.Blackjacks++
		s.BlackjackChips += result.Net
	case game.Push:
		s.Pushes++
	case game.Lost:
		s.Losses++
		s.LostChips += result.Net
		if result.Value > 21 {
			s.Busts++
		} else if !result.DealerBust {
			s.DealerWins++
		}
	}

	if result.Seat >= 0 && result.Seat < len(s.SeatResults) {
		seat := &s.SeatResults[result.Seat]
		seat.Hands++
		seat.SumUnits += units
		seat.Net += result.Net
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Values = append(s.Values, other.Values...)

	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.DealerWins += other.DealerWins

	s.Wagered += other.Wagered
	s.Net += other.Net
	s.WonChips += other.WonChips
	s.BlackjackChips += other.BlackjackChips
	s.LostChips += other.LostChips

	for i := range s.SeatResults {
		s.SeatResults[i].Hands += other.SeatResults[i].Hands
		s.SeatResults[i].SumUnits += other.SeatResults[i].SumUnits
		s.SeatResults[i].Net += other.SeatResults[i].Net
	}
}

// Mean returns the mean result in bets per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge returns the house's gain as a fraction of the total wagered
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.Net) / float64(s.Wagered)
}

// Rate returns n as a fraction of all hands
func (s *Statistics) Rate(n int) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(n) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
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

// SeatMean returns the mean result for a seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatResults) {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Hands == 0 {
		return 0
	}
	return ss.SumUnits / float64(ss.Hands)
}

// IsLedgerBalanced checks that the per-outcome chip totals add up to Net
func (s *Statistics) IsLedgerBalanced() bool {
	return s.WonChips+s.BlackjackChips+s.LostChips == s.Net
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: net=%d, won=%d, blackjack=%d, lost=%d",
			s.Net, s.WonChips, s.BlackjackChips, s.LostChips)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if outcomes := s.Wins + s.Losses + s.Pushes + s.Blackjacks; outcomes != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match total hands (%d)", outcomes, s.Hands)
	}

	seatHands := 0
	for _, ss := range s.SeatResults {
		seatHands += ss.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}
	return nil
}
