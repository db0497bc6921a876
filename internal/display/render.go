// Package display renders a table snapshot for terminal output: the dealer
// console view of stacks, bets, pots, and whose turn it is.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/finnb0y/virtualchips/internal/position"
	"github.com/finnb0y/virtualchips/internal/state"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	TurnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	FoldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	AllInStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	PlayerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))
)

// RenderTable formats one table of the snapshot.
func RenderTable(s *state.State, tableID string) string {
	table, ok := s.Tables[tableID]
	if !ok {
		return ""
	}

	var b strings.Builder
	level := s.Tournament.Config.Level(table.CurrentBlindLevel)
	header := fmt.Sprintf(" %s · level %d · blinds %d/%d ",
		s.Tournament.Name, table.CurrentBlindLevel+1, level.SmallBlind, level.BigBlind)
	if level.Ante > 0 {
		header = fmt.Sprintf("%s· ante %d ", header, level.Ante)
	}
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	if table.Round != state.RoundNone {
		b.WriteString(fmt.Sprintf("round: %s\n", table.Round))
	}

	players := s.PlayersAtTable(tableID)
	markers := seatMarkers(players, table.DealerButtonPosition)

	for _, p := range players {
		b.WriteString(renderPlayer(p, table, markers[p.ID]))
		b.WriteString("\n")
	}

	b.WriteString(renderPots(table))
	return b.String()
}

// seatMarkers maps player ids to their button/blind marker for this hand.
func seatMarkers(players []*state.Player, buttonSeat int) map[string]string {
	var active []*state.Player
	for _, p := range players {
		if p.Status != state.StatusOut {
			active = append(active, p)
		}
	}

	markers := make(map[string]string, 3)
	positions, ok := position.Calculate(active, buttonSeat)
	if !ok {
		return markers
	}
	markers[active[positions.Dealer].ID] = "D"
	markers[active[positions.SmallBlind].ID] = "s"
	markers[active[positions.BigBlind].ID] = "B"
	if len(active) == 2 {
		// Heads-up the button posts the small blind; the button marker wins.
		markers[active[positions.Dealer].ID] = "D"
	}
	return markers
}

func renderPlayer(p *state.Player, table *state.TableState, marker string) string {
	if marker == "" {
		marker = " "
	}

	line := fmt.Sprintf("%s seat %-2d %-12s %6d", marker, p.SeatNumber, p.Name, p.Balance)
	if p.CurrentBet > 0 {
		line = fmt.Sprintf("%s  bet %d", line, p.CurrentBet)
	}

	switch {
	case table.CurrentTurn == p.ID:
		return TurnStyle.Render("→" + line)
	case p.Status == state.StatusFolded || p.Status == state.StatusOut:
		return FoldedStyle.Render(" " + line + "  " + string(p.Status))
	case p.Status == state.StatusAllIn:
		return AllInStyle.Render(" " + line + "  ALL IN")
	default:
		return PlayerStyle.Render(" " + line)
	}
}

func renderPots(table *state.TableState) string {
	var b strings.Builder
	b.WriteString(PotStyle.Render(fmt.Sprintf("pot: %d", table.Pot)))
	b.WriteString("\n")

	if table.Distribution == nil {
		return b.String()
	}
	for i, pot := range table.Distribution.Pots {
		label := fmt.Sprintf("  pot %d: %d (%d eligible)", i+1, pot.Amount, len(pot.EligiblePlayerIDs))
		if i == table.Distribution.CurrentPotIndex {
			label += " ← distributing"
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}
