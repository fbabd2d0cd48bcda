package view

import (
	"fmt"
	"io"
	"strings"
)

// RenderState writes a text board: opponent on top, you below, hand last.
func RenderState(w io.Writer, sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  %s  Hand: %d  Score: %d\n", opp.Label, opp.HandCount, opp.Score)
	fmt.Fprintf(w, "║  Defense: %s\n", formatDefenseRow(opp))
	fmt.Fprintf(w, "║  Servers: %s\n", formatServerRow(opp))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Servers: %s\n", formatServerRow(you))
	fmt.Fprintf(w, "║  Defense: %s\n", formatDefenseRow(you))
	fmt.Fprintf(w, "║  %s  Hand: %d  Score: %d\n", you.Label, you.HandCount, you.Score)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | Deck: %d", sv.Turn, sv.DeckCount)
	switch {
	case sv.GameOver:
		turnInfo += " | GAME OVER: " + sv.Result
	case sv.IsYourTurn:
		turnInfo += fmt.Sprintf(" | Your turn (%d moves left)", sv.MovesRemaining)
	default:
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for _, c := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", c.Index+1, FormatCard(c))
		}
		fmt.Fprintln(w)
	}
}

// RenderEvents writes one line per event, formatted like the text logger.
func RenderEvents(w io.Writer, events []EventView) {
	for _, ev := range events {
		fmt.Fprintf(w, "T%-3d %-16s| %s\n", ev.Turn, ev.Type, ev.Details)
	}
}

// FormatCard renders a card as "ZERO-DAY atk/8".
func FormatCard(c CardView) string {
	return fmt.Sprintf("%s %s/%d", c.Category, kindTag(c.Kind), c.Power)
}

func kindTag(kind string) string {
	switch kind {
	case "attack":
		return "atk"
	case "defense":
		return "def"
	case "utility":
		return "util"
	default:
		return kind
	}
}

func formatServerRow(pv PlayerView) string {
	cells := make([]string, len(pv.Servers))
	for i, s := range pv.Servers {
		if s.Destroyed {
			cells[i] = fmt.Sprintf("[%d:DOWN]", i+1)
			continue
		}
		cells[i] = fmt.Sprintf("[%d:%s %d/5]", i+1, s.Marker, s.SPV)
	}
	return strings.Join(cells, " ")
}

func formatDefenseRow(pv PlayerView) string {
	cells := make([]string, len(pv.Servers))
	for i, s := range pv.Servers {
		if s.Defense == nil {
			cells[i] = "[ ]"
			continue
		}
		cells[i] = fmt.Sprintf("[%s %d]", s.Defense.Category, s.DefenseHealth)
	}
	return strings.Join(cells, " ")
}
