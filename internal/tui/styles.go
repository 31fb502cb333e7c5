package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emberforge/lifequest/pkg/domain"
)

// Shimmer animation for the LIFEQUEST logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "LIFEQUEST" as a flowing wave of torchlight.
// Deep bronze (#3a2a10) -> bright gold (#fbbf24). No hue drift.
func renderShimmerLogo(frame int) string {
	const text = "LIFEQUEST"
	n := len(text)

	var out string

	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// Flowing phase — one smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Continuous RGB interpolation: deep bronze -> bright gold
		r := clampByte(58 + b*(251-58))
		g := clampByte(42 + b*(191-42))
		bl := clampByte(16 + b*(36-16))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles — parchment-on-stone palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / rewards
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	xpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa"))

	hpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f87171"))

	streakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb923c")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a4050"))
)

// DifficultyStyle returns the style for a quest difficulty chip.
func DifficultyStyle(d string) lipgloss.Style {
	switch d {
	case domain.DifficultyEasy:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	case domain.DifficultyMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15"))
	case domain.DifficultyHard:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	default:
		return dimStyle
	}
}

// CategoryStyle returns the style for a quest category chip.
func CategoryStyle(c string) lipgloss.Style {
	colors := map[string]string{
		"productivity": "#60a5fa",
		"fitness":      "#fb923c",
		"study":        "#a78bfa",
		"health":       "#4ade80",
		"habits":       "#f472b6",
	}
	if hex, ok := colors[c]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return dimStyle
}

// rankStyle colors leaderboard ranks: gold, silver, bronze, then dim.
func rankStyle(rank int) lipgloss.Style {
	switch rank {
	case 1:
		return accentStyle
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c4d0"))
	case 3:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#b45309"))
	default:
		return metaStyle
	}
}

func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
