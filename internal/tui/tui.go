package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Phase is the screen the table is on
type Phase int

const (
	PhasePlayerCount Phase = iota
	PhaseBets
	PhasePlaying
	PhaseRoundOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhasePlayerCount:
		return "player-count"
	case PhaseBets:
		return "bets"
	case PhasePlaying:
		return "playing"
	case PhaseRoundOver:
		return "round-over"
	default:
		return "unknown"
	}
}

// Seat is a preconfigured seat. Seats with an Agent are played by the computer.
type Seat struct {
	Name  string
	Agent game.Agent
	Bet   uint
}

// Model is the Bubble Tea model for a local blackjack table
type Model struct {
	game      *game.Game
	logger    *log.Logger
	formatter *game.EventFormatter
	agents    map[int]game.Agent

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	phase       Phase
	betSeat     int
	status      string
	statusErr   bool
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input/actions

	initCmd tea.Cmd // from an all-bot table dealing during New

	width       int
	height      int
	initialized bool
}

// New creates a table model around g. With no seats the player count is
// asked for first; otherwise the seats are created immediately and betting
// starts.
func New(g *game.Game, seats []Seat, logger *log.Logger) (*Model, error) {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 10
	ti.Width = 30
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		formatter:   game.NewEventFormatter(game.FormattingOptions{}),
		agents:      make(map[int]game.Agent),
		logViewport: vp,
		input:       ti,
		phase:       PhasePlayerCount,
		focusedPane: 1,
	}
	g.EventBus().Subscribe(game.EventSubscriberFunc(m.onEvent))

	if len(seats) > 0 {
		if err := m.seatPlayers(seats); err != nil {
			return nil, err
		}
	}
	m.updatePrompt()
	return m, nil
}

func (m *Model) seatPlayers(seats []Seat) error {
	if err := m.game.CreatePlayers(len(seats)); err != nil {
		return err
	}
	for i, s := range seats {
		if s.Name != "" {
			if err := m.game.SetPlayerName(i, s.Name); err != nil {
				return err
			}
		}
		if s.Bet > 0 {
			if err := m.game.SetPlayerBet(i, s.Bet); err != nil {
				return err
			}
		}
		if s.Agent != nil {
			m.agents[i] = s.Agent
		}
	}
	m.initCmd = m.startBetting()
	return nil
}

// Phase returns the current screen
func (m *Model) Phase() Phase {
	return m.phase
}

// Status returns the last status or error message
func (m *Model) Status() string {
	return m.status
}

// Log returns the lines of the round log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCmd)
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.quit()
		case "tab":
			m.toggleFocus()
			return m, nil
		}

		if m.focusedPane == 0 {
			m.scrollLog(msg.String())
			return m, nil
		}

		if m.phase == PhasePlaying || m.phase == PhaseRoundOver {
			return m.handleCommandKey(msg.String())
		}

		if msg.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if value == "q" || value == "quit" {
				return m.quit()
			}
			if cmd := m.submit(value); cmd != nil {
				return m, cmd
			}
			return m, nil
		}
	}

	if m.focusedPane == 1 && (m.phase == PhasePlayerCount || m.phase == PhaseBets) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

func (m *Model) toggleFocus() {
	if m.focusedPane == 0 {
		m.focusedPane = 1
		m.input.Focus()
	} else {
		m.focusedPane = 0
		m.input.Blur()
	}
}

func (m *Model) scrollLog(key string) {
	switch key {
	case "up", "k":
		m.logViewport.ScrollUp(1)
	case "down", "j":
		m.logViewport.ScrollDown(1)
	case "pgup", "b":
		m.logViewport.HalfPageUp()
	case "pgdown", "f":
		m.logViewport.HalfPageDown()
	case "home", "g":
		m.logViewport.GotoTop()
	case "end", "G":
		m.logViewport.GotoBottom()
	}
}

// submit handles an entered line during setup
func (m *Model) submit(value string) tea.Cmd {
	switch m.phase {
	case PhasePlayerCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setError(fmt.Sprintf("enter a number of players from %d to %d", game.MinPlayers, game.MaxPlayers))
			return nil
		}
		if err := m.game.CreatePlayers(n); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.logger.Info("Players created", "count", n)
		return m.startBetting()

	case PhaseBets:
		if value != "" {
			amount, err := strconv.ParseUint(value, 10, 0)
			if err != nil {
				m.setError("enter a bet in whole dollars")
				return nil
			}
			if err := m.game.SetPlayerBet(m.betSeat, uint(amount)); err != nil {
				m.setError(err.Error())
				return nil
			}
		}
		m.betSeat = m.nextBettingSeat(m.betSeat + 1)
		if m.betSeat < 0 {
			return m.startRound()
		}
		m.updatePrompt()
	}
	return nil
}

// handleCommandKey handles single key commands during and after a round
func (m *Model) handleCommandKey(key string) (tea.Model, tea.Cmd) {
	switch {
	case key == "q":
		return m.quit()

	case m.phase == PhasePlaying && (key == "h" || key == "s"):
		seat, ok := m.game.NextPlayerToAct()
		if !ok {
			return m, nil
		}
		var err error
		if key == "h" {
			_, err = m.game.PlayerHit(seat)
		} else {
			err = m.game.PlayerStand(seat)
		}
		if err != nil {
			return m, m.fail(err)
		}
		m.clearStatus()
		return m, m.advance()

	case m.phase == PhaseRoundOver && key == "n":
		if err := m.game.DiscardAllHands(); err != nil {
			return m, m.fail(err)
		}
		if seat := m.firstUncoveredBet(); seat >= 0 {
			m.startBetting()
			m.betSeat = seat
			m.setError(fmt.Sprintf("%s cannot cover their bet", m.playerName(seat)))
			m.updatePrompt()
			return m, nil
		}
		return m, m.startRound()

	case m.phase == PhaseRoundOver && key == "b":
		if err := m.game.DiscardAllHands(); err != nil {
			return m, m.fail(err)
		}
		return m, m.startBetting()
	}
	return m, nil
}

func (m *Model) startBetting() tea.Cmd {
	m.phase = PhaseBets
	m.capBotBets()
	m.betSeat = m.nextBettingSeat(0)
	m.focusInput()
	m.updatePrompt()
	if m.betSeat < 0 {
		// every seat is a bot; go straight to the deal
		return m.startRound()
	}
	return nil
}

// nextBettingSeat returns the first human seat from start, or -1
func (m *Model) nextBettingSeat(start int) int {
	for i := start; i < m.game.PlayerCount(); i++ {
		if _, isBot := m.agents[i]; !isBot {
			return i
		}
	}
	return -1
}

// capBotBets lets broke bots bet what they have left
func (m *Model) capBotBets() {
	for seat := range m.agents {
		p, err := m.game.Player(seat)
		if err != nil || p.Bet <= p.Bank {
			continue
		}
		if err := m.game.SetPlayerBet(seat, p.Bank); err != nil {
			m.logger.Warn("Failed to cap bot bet", "seat", seat, "error", err)
		}
	}
}

func (m *Model) firstUncoveredBet() int {
	m.capBotBets()
	for i, p := range m.game.Players() {
		if p.Bet > p.Bank {
			return i
		}
	}
	return -1
}

func (m *Model) startRound() tea.Cmd {
	if err := m.game.DealCards(); err != nil {
		if errors.Is(err, game.ErrBetExceedsBank) {
			m.setError(err.Error())
			m.phase = PhaseBets
			m.betSeat = max(m.nextBettingSeat(0), 0)
			m.updatePrompt()
			return nil
		}
		return m.fail(err)
	}
	m.phase = PhasePlaying
	m.input.Blur()
	m.clearStatus()
	return m.advance()
}

// advance plays bot seats until a human must act, then finishes the round
// once nobody can act.
func (m *Model) advance() tea.Cmd {
	for {
		seat, ok := m.game.NextPlayerToAct()
		if !ok {
			return m.finishRound()
		}
		agent, isBot := m.agents[seat]
		if !isBot {
			m.updatePrompt()
			return nil
		}

		decision := agent.Decide(m.game.View())
		var err error
		if decision.Action == game.Hit {
			_, err = m.game.PlayerHit(seat)
		} else {
			err = m.game.PlayerStand(seat)
		}
		if err != nil {
			return m.fail(err)
		}
		m.logger.Debug("Bot action", "seat", seat, "action", decision.Action, "reasoning", decision.Reasoning)
	}
}

func (m *Model) finishRound() tea.Cmd {
	if err := m.game.RunDealerTurn(); err != nil {
		return m.fail(err)
	}
	if _, err := m.game.SettleRound(); err != nil {
		return m.fail(err)
	}
	if _, err := m.game.ApplyResults(); err != nil {
		return m.fail(err)
	}
	if err := m.game.ValidateBankConservation(); err != nil {
		m.logger.Error("Bank conservation violation detected!", "error", err)
	}
	m.phase = PhaseRoundOver
	m.updatePrompt()
	return nil
}

// fail reports an unrecoverable error. An exhausted shoe ends the session.
func (m *Model) fail(err error) tea.Cmd {
	m.logger.Error("Game error", "phase", m.phase, "error", err)
	m.setError(err.Error())
	if errors.Is(err, game.ErrShoeExhausted) {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) focusInput() {
	m.focusedPane = 1
	m.input.Focus()
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) playerName(seat int) string {
	p, err := m.game.Player(seat)
	if err != nil {
		return fmt.Sprintf("Seat %d", seat+1)
	}
	return p.Name
}

func (m *Model) updatePrompt() {
	switch m.phase {
	case PhasePlayerCount:
		m.input.Placeholder = fmt.Sprintf("How many players? (%d-%d)", game.MinPlayers, game.MaxPlayers)
	case PhaseBets:
		if p, err := m.game.Player(m.betSeat); err == nil {
			m.input.Placeholder = fmt.Sprintf("Bet for %s (bank $%d, enter keeps $%d)", p.Name, p.Bank, p.Bet)
		}
	}
}

func (m *Model) onEvent(event game.GameEvent) {
	line := m.formatter.Format(event)
	if line == "" {
		return
	}
	if _, ok := event.(game.RoundStartEvent); ok {
		line = HeaderStyle.Render(line)
	}
	m.addLogEntry(line)
}

// addLogEntry adds an entry to the log and scrolls to the bottom
func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	tableContent := m.renderTablePane()
	tableWidth := max(lipgloss.Width(tableContent), 34)
	paneHeight := max(m.height-actionHeight-4, 1)

	tablePane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(tableWidth).
		Height(paneHeight).
		Render(tableContent)

	logWidth := max(m.width-tableWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, tablePane, logStyle.Render(m.logViewport.View()))
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderTablePane renders the dealer and every seat
func (m *Model) renderTablePane() string {
	var content strings.Builder
	view := m.game.View()

	title := "Blackjack"
	if view.Round > 0 {
		title = fmt.Sprintf("Blackjack - round %d", view.Round)
	}
	content.WriteString(HeaderStyle.Render(" " + title + " "))
	content.WriteString("\n\n")

	dealer := view.Dealer
	content.WriteString(PlayerInfoStyle.Render("Dealer "))
	if len(dealer.Cards) > 0 {
		content.WriteString(formatCards(dealer.Cards, dealer.HiddenCards))
		content.WriteString(fmt.Sprintf(" (%d)", dealer.Value))
		if dealer.Bust {
			content.WriteString(" " + ErrorStyle.Render("BUST"))
		}
	}
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("House $%d  Shoe %d", dealer.Bank, view.ShoeRemaining)))
	content.WriteString("\n\n")

	results := make(map[int]game.Result)
	if m.phase == PhaseRoundOver {
		for _, r := range m.game.Results() {
			results[r.Seat] = r
		}
	}

	for _, p := range view.Players {
		marker := "  "
		if p.CanAct && p.Seat == view.ActingSeat {
			marker = ActingStyle.Render("▶ ")
		}
		name := p.Name
		if _, isBot := m.agents[p.Seat]; isBot {
			name += " (bot)"
		}
		content.WriteString(marker + PlayerInfoStyle.Render(name))
		content.WriteString(InfoStyle.Render(fmt.Sprintf("  $%d bet $%d", p.Bank, p.Bet)))
		content.WriteString("\n   ")
		if len(p.Cards) > 0 {
			content.WriteString(formatCards(p.Cards, 0))
			content.WriteString(fmt.Sprintf(" (%d)", p.Value))
			switch {
			case p.Blackjack:
				content.WriteString(" " + ActionsStyle.Render("BLACKJACK"))
			case p.Bust:
				content.WriteString(" " + ErrorStyle.Render("BUST"))
			}
		}
		if r, ok := results[p.Seat]; ok {
			content.WriteString(" " + OutcomeStyle(r.Outcome).Render(fmt.Sprintf("%s %+d", r.Outcome, r.Net)))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane renders the prompt, status line and key help
func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch m.phase {
	case PhasePlayerCount, PhaseBets:
		content.WriteString(m.input.View())
		content.WriteString("\n")
	case PhasePlaying:
		if seat, ok := m.game.NextPlayerToAct(); ok {
			p, _ := m.game.Player(seat)
			content.WriteString(HandInfoStyle.Render(fmt.Sprintf("%s to act: %s", p.Name, p.Hand.String())))
			content.WriteString("\n")
		}
		content.WriteString(ActionsStyle.Render("Actions: [h]it [s]tand"))
		content.WriteString("\n")
	case PhaseRoundOver:
		content.WriteString(ActionsStyle.Render("[n]ext round  [b]ets  [q]uit"))
		content.WriteString("\n")
	}

	if m.status != "" {
		style := InfoStyle
		if m.statusErr {
			style = ErrorStyle
		}
		content.WriteString(style.Render(m.status))
		content.WriteString("\n")
	}

	help := "Tab to scroll log • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab back"
	}
	content.WriteString(InfoStyle.Render(help))
	return content.String()
}

// formatCards formats cards with colors, followed by hidden placeholders
func formatCards(cards []deck.Card, hidden int) string {
	formatted := make([]string, 0, len(cards)+hidden)
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	for range hidden {
		formatted = append(formatted, HiddenCardStyle.Render("??"))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
