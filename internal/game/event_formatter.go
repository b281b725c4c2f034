package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowShortRoundID bool   // Prefix round headers with the first 8 characters of the round ID
	ShowBanks        bool   // Include bank balances in results
	Perspective      string // Player name rendered as "You"
}

// EventFormatter provides centralized formatting for all round events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any round event, or "" for events it does not know
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case CardDealtEvent:
		return ef.FormatCardDealt(e)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case DealerTurnEvent:
		return ef.FormatDealerTurn(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	default:
		return ""
	}
}

// FormatRoundStart formats a round start event
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	header := fmt.Sprintf("*** ROUND %d ***", event.Round)
	if ef.opts.ShowShortRoundID && len(event.RoundID) >= 8 {
		header = fmt.Sprintf("*** ROUND %d [%s] ***", event.Round, event.RoundID[:8])
	}

	bets := make([]string, 0, len(event.Players))
	for _, p := range event.Players {
		bets = append(bets, fmt.Sprintf("%s $%d", ef.name(p.Name), p.Bet))
	}
	if len(bets) == 0 {
		return header
	}
	return header + " bets: " + strings.Join(bets, ", ")
}

// FormatCardDealt formats a card dealt event
func (ef *EventFormatter) FormatCardDealt(event CardDealtEvent) string {
	if event.Hidden {
		return fmt.Sprintf("%s: dealt [hidden]", ef.name(event.Name))
	}
	return fmt.Sprintf("%s: dealt %s", ef.name(event.Name), event.Card)
}

// FormatPlayerAction formats a player action event
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	name := ef.name(event.Name)
	if event.Action == Stand {
		return fmt.Sprintf("%s: stands on %d", name, event.Value)
	}

	text := fmt.Sprintf("%s: hits, draws %s (%d)", name, event.Card, event.Value)
	switch event.Status {
	case HitBust:
		text += " BUST"
	case HitTwentyOne:
		text += " twenty-one"
	}
	return text
}

// FormatDealerTurn formats a dealer turn event
func (ef *EventFormatter) FormatDealerTurn(event DealerTurnEvent) string {
	cards := formatCards(event.Cards)
	switch {
	case event.Skipped:
		return fmt.Sprintf("*** DEALER *** [%s] (%d) all players bust", cards, event.Value)
	case event.Bust:
		return fmt.Sprintf("*** DEALER *** [%s] (%d) BUST", cards, event.Value)
	default:
		return fmt.Sprintf("*** DEALER *** [%s] (%d)", cards, event.Value)
	}
}

// FormatRoundEnd formats a round end event, one line per player
func (ef *EventFormatter) FormatRoundEnd(event RoundEndEvent) string {
	lines := make([]string, 0, len(event.Results)+1)
	lines = append(lines, "*** RESULTS ***")
	for _, r := range event.Results {
		lines = append(lines, ef.FormatResult(r))
	}
	if ef.opts.ShowBanks {
		lines = append(lines, fmt.Sprintf("House bank: $%d", event.DealerBank))
	}
	return strings.Join(lines, "\n")
}

// FormatResult formats a single player's settlement
func (ef *EventFormatter) FormatResult(r Result) string {
	var text string
	switch r.Outcome {
	case Blackjack:
		text = fmt.Sprintf("%s: blackjack! wins $%d", ef.name(r.Name), r.Net)
	case Won:
		text = fmt.Sprintf("%s: %d beats %d, wins $%d", ef.name(r.Name), r.PlayerValue, r.DealerValue, r.Net)
	case Push:
		text = fmt.Sprintf("%s: push at %d", ef.name(r.Name), r.PlayerValue)
	default:
		if r.PlayerValue > 21 {
			text = fmt.Sprintf("%s: busts with %d, loses $%d", ef.name(r.Name), r.PlayerValue, r.Bet)
		} else {
			text = fmt.Sprintf("%s: %d against %d, loses $%d", ef.name(r.Name), r.PlayerValue, r.DealerValue, r.Bet)
		}
	}
	if ef.opts.ShowBanks {
		text += fmt.Sprintf(" (bank $%d)", r.Bank)
	}
	return text
}

func (ef *EventFormatter) name(name string) string {
	if ef.opts.Perspective != "" && name == ef.opts.Perspective {
		return "You"
	}
	return name
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
