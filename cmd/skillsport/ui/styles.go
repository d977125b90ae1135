// Package ui provides the visual components of the SkillSport terminal
// client: theme, story carousel, autoplay viewer, composer, and the feed,
// learning-plan, community and notification pages.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SkillSport palette, lifted from the web client's blue-on-white look.
var (
	Blue      = lipgloss.Color("#1d4ed8")
	BlueLight = lipgloss.Color("#60a5fa")
	White     = lipgloss.Color("#ffffff")
	Grey      = lipgloss.Color("#6b7280")
	GreyDark  = lipgloss.Color("#374151")
	Red       = lipgloss.Color("#e53935")
	Green     = lipgloss.Color("#22c55e")
	Amber     = lipgloss.Color("#f59e0b")
)

// Styles holds every styled component used by the pages.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Notice   lipgloss.Style
	ErrText  lipgloss.Style
	OkText   lipgloss.Style
	Card     lipgloss.Style
	CardHot  lipgloss.Style
	Owner    lipgloss.Style
	Caption  lipgloss.Style
	MenuItem lipgloss.Style
	MenuHot  lipgloss.Style
}

// DefaultStyles builds the standard SkillSport theme. Caption text picks a
// lighter grey on dark terminals, where the web palette's slate is unreadable.
func DefaultStyles() Styles {
	caption := GreyDark
	if DarkTerminal() {
		caption = lipgloss.Color("#d1d5db")
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Blue).
			Foreground(White).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(Grey).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(Grey),
		Badge: lipgloss.NewStyle().
			Background(Red).
			Foreground(White).
			Padding(0, 1).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true),
		ErrText: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),
		OkText: lipgloss.NewStyle().
			Foreground(Green),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Grey).
			Padding(0, 1),
		CardHot: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Padding(0, 1).
			Bold(true),
		Owner: lipgloss.NewStyle().
			Foreground(BlueLight).
			Bold(true),
		Caption: lipgloss.NewStyle().
			Foreground(caption),
		MenuItem: lipgloss.NewStyle().
			Foreground(caption).
			Padding(0, 1),
		MenuHot: lipgloss.NewStyle().
			Background(Blue).
			Foreground(White).
			Padding(0, 1),
	}
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// DarkTerminal is a crude dark-background check used to soften captions.
func DarkTerminal() bool {
	bg := os.Getenv("COLORFGBG")
	if bg == "" {
		return false
	}
	parts := strings.Split(bg, ";")
	return len(parts) == 2 && (parts[1] == "0" || parts[1] == "8")
}
