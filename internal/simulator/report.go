package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
)

// Summary is the serialisable form of a Report
type Summary struct {
	Tables    int    `json:"tables"`
	Players   int    `json:"players_per_table"`
	Strategy  string `json:"strategy"`
	Seed      int64  `json:"seed"`
	Decks     int    `json:"decks"`
	Bet       uint   `json:"bet"`
	Rounds    int    `json:"rounds"`
	Hands     int    `json:"hands"`
	ElapsedMS int64  `json:"elapsed_ms"`
	TimedOut  bool   `json:"timed_out"`

	Wins       int `json:"wins"`
	Blackjacks int `json:"blackjacks"`
	Pushes     int `json:"pushes"`
	Losses     int `json:"losses"`
	Busts      int `json:"busts"`

	Wagered   int64      `json:"wagered"`
	Net       int64      `json:"player_net"`
	HouseEdge float64    `json:"house_edge"`
	MeanUnits float64    `json:"mean_units_per_hand"`
	StdDev    float64    `json:"stddev_units"`
	CI95      [2]float64 `json:"ci95_units"`

	PerTable []TableReport `json:"per_table"`
}

// Summary flattens the report for output
func (r *Report) Summary() Summary {
	low, high := r.Stats.ConfidenceInterval95()
	return Summary{
		Tables:     r.Config.Tables,
		Players:    r.Config.Players,
		Strategy:   r.Config.Strategy,
		Seed:       r.Config.Seed,
		Decks:      r.Config.Decks,
		Bet:        r.Config.Bet,
		Rounds:     r.Rounds,
		Hands:      r.Stats.Hands,
		ElapsedMS:  r.Elapsed.Milliseconds(),
		TimedOut:   r.TimedOut,
		Wins:       r.Stats.Wins,
		Blackjacks: r.Stats.Blackjacks,
		Pushes:     r.Stats.Pushes,
		Losses:     r.Stats.Losses,
		Busts:      r.Stats.Busts,
		Wagered:    r.Stats.Wagered,
		Net:        r.Stats.Net,
		HouseEdge:  r.Stats.HouseEdge(),
		MeanUnits:  r.Stats.Mean(),
		StdDev:     r.Stats.StdDev(),
		CI95:       [2]float64{low, high},
		PerTable:   r.Tables,
	}
}

// WriteJSON writes the report summary to path atomically
func (r *Report) WriteJSON(path string) error {
	return fileutil.WriteJSON(path, r.Summary())
}

// String renders a short human readable report
func (r *Report) String() string {
	s := r.Stats
	low, high := s.ConfidenceInterval95()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Simulated %d rounds (%d hands) on %d tables with %s strategy in %s\n",
		r.Rounds, s.Hands, r.Config.Tables, r.Config.Strategy, r.Elapsed.Round(time.Millisecond))
	if r.TimedOut {
		sb.WriteString("Stopped early: timeout reached\n")
	}
	fmt.Fprintf(&sb, "Wins:       %7d (%.2f%%)\n", s.Wins, 100*s.Rate(s.Wins))
	fmt.Fprintf(&sb, "Blackjacks: %7d (%.2f%%)\n", s.Blackjacks, 100*s.Rate(s.Blackjacks))
	fmt.Fprintf(&sb, "Pushes:     %7d (%.2f%%)\n", s.Pushes, 100*s.Rate(s.Pushes))
	fmt.Fprintf(&sb, "Losses:     %7d (%.2f%%), %d busts\n", s.Losses, 100*s.Rate(s.Losses), s.Busts)
	fmt.Fprintf(&sb, "Wagered $%d, player net $%d\n", s.Wagered, s.Net)
	fmt.Fprintf(&sb, "House edge: %.3f%%\n", 100*s.HouseEdge())
	fmt.Fprintf(&sb, "Mean: %+.4f bets/hand (95%% CI %+.4f to %+.4f), stddev %.4f", s.Mean(), low, high, s.StdDev())
	return sb.String()
}
