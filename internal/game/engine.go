package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"
)

// Engine drives whole rounds on a Game by asking agents for decisions. It is
// shared by the simulator and by bot seats in the terminal UI.
type Engine struct {
	game         *Game
	defaultAgent Agent
	logger       *log.Logger
}

// NewEngine creates a new engine with a default agent for unassigned seats
func NewEngine(game *Game, defaultAgent Agent, logger *log.Logger) *Engine {
	return &Engine{
		game:         game,
		defaultAgent: defaultAgent,
		logger:       logger.WithPrefix("engine"),
	}
}

// RoundSummary contains the results of a completed round. Hands are captured
// before they are discarded.
type RoundSummary struct {
	RoundID string
	Round   int
	Players []PlayerView
	Dealer  DealerView
	Results []Result
	Actions []PlayerAction
}

// PlayerAction represents an action taken by a player during the round
type PlayerAction struct {
	Seat      int
	Action    Action
	Value     int // hand value after the action
	Reasoning string
}

// Game returns the underlying game
func (e *Engine) Game() *Game {
	return e.game
}

// PlayRound runs a complete round from deal to discard and returns the summary.
// agents maps seats to agents; seats without one use the default agent.
func (e *Engine) PlayRound(agents map[int]Agent) (*RoundSummary, error) {
	g := e.game
	if err := g.DealCards(); err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}

	summary := &RoundSummary{
		RoundID: g.RoundID(),
		Round:   g.Round(),
	}

	for {
		seat, ok := g.NextPlayerToAct()
		if !ok {
			break
		}

		agent := e.defaultAgent
		if a, found := agents[seat]; found && a != nil {
			agent = a
		}

		decision := agent.Decide(g.View())
		switch decision.Action {
		case Hit:
			if _, err := g.PlayerHit(seat); err != nil {
				return nil, fmt.Errorf("seat %d: %w", seat, err)
			}
		case Stand:
			if err := g.PlayerStand(seat); err != nil {
				return nil, fmt.Errorf("seat %d: %w", seat, err)
			}
		default:
			e.logger.Warn("Unknown action, standing", "seat", seat, "action", decision.Action)
			if err := g.PlayerStand(seat); err != nil {
				return nil, fmt.Errorf("seat %d: %w", seat, err)
			}
		}

		p := g.players[seat]
		summary.Actions = append(summary.Actions, PlayerAction{
			Seat:      seat,
			Action:    decision.Action,
			Value:     p.Hand.Value(),
			Reasoning: decision.Reasoning,
		})
		e.logger.Debug("Player action",
			"seat", seat,
			"action", decision.Action,
			"value", p.Hand.Value(),
			"reasoning", decision.Reasoning)
	}

	if err := g.RunDealerTurn(); err != nil {
		return nil, fmt.Errorf("dealer turn: %w", err)
	}
	if _, err := g.SettleRound(); err != nil {
		return nil, fmt.Errorf("settle: %w", err)
	}
	results, err := g.ApplyResults()
	if err != nil {
		return nil, fmt.Errorf("apply results: %w", err)
	}

	if err := g.ValidateBankConservation(); err != nil {
		e.logger.Error("Bank conservation violation detected!", "error", err)
		return nil, fmt.Errorf("bank conservation violation: %w", err)
	}
	if err := g.ValidateCardConservation(); err != nil {
		e.logger.Error("Card conservation violation detected!", "error", err)
		return nil, fmt.Errorf("card conservation violation: %w", err)
	}

	view := g.View()
	summary.Players = view.Players
	summary.Dealer = view.Dealer
	summary.Results = results

	if e.logger.GetLevel() <= log.DebugLevel {
		e.logger.Debug("Round complete", "summary", litter.Sdump(summary))
	}

	if err := g.DiscardAllHands(); err != nil {
		return nil, fmt.Errorf("discard: %w", err)
	}
	return summary, nil
}
