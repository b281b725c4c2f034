package game

// Action is a player's choice on their turn
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Reasoning string // Human-readable explanation
}

// Agent represents any entity (human or bot) that decides for a seat.
// Agents receive an immutable view with the dealer hole card hidden and
// return a decision; the engine applies it.
type Agent interface {
	Decide(view TableView) Decision
}

// AgentFunc adapts a function to Agent
type AgentFunc func(view TableView) Decision

// Decide calls f(view)
func (f AgentFunc) Decide(view TableView) Decision { return f(view) }
