// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hark/internal/core/transcript"
)

// Palette defines a minimal semantic theme palette. Positive, Negative and
// Neutral color sentiment; Selected marks the chosen entity.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Positive   color.Color
	Negative   color.Color
	Neutral    color.Color
	Selected   color.Color
	Warning    color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Positive:   lipgloss.Color("#9ece6a"),
		Negative:   lipgloss.Color("#f7768e"),
		Neutral:    lipgloss.Color("#a9b1d6"),
		Selected:   lipgloss.Color("#2563eb"),
		Warning:    lipgloss.Color("#e0af68"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Positive:   lipgloss.Color("#b8bb26"),
		Negative:   lipgloss.Color("#fb4934"),
		Neutral:    lipgloss.Color("#a89984"),
		Selected:   lipgloss.Color("#458588"),
		Warning:    lipgloss.Color("#fabd2f"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Positive:   lipgloss.Color("#a6e3a1"), // Green
		Negative:   lipgloss.Color("#f38ba8"), // Red
		Neutral:    lipgloss.Color("#9399b2"), // Overlay2
		Selected:   lipgloss.Color("#1e66f5"), // Latte blue
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports, rebuilt by SetTheme.
var (
	TitleStyle       lipgloss.Style
	MetaStyle        lipgloss.Style
	TextStyle        lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextWarningStyle lipgloss.Style
	DividerStyle     lipgloss.Style

	TextPrimaryStyle        lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSecondaryStyle      lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextSurfaceStyle        lipgloss.Style

	ChipStyle         lipgloss.Style
	ChipFocusedStyle  lipgloss.Style
	ChipSelectedStyle lipgloss.Style

	WordCursorStyle lipgloss.Style
	BadgeStyle      lipgloss.Style

	SearchStyle       lipgloss.Style
	SearchActiveStyle lipgloss.Style

	FooterStyle      lipgloss.Style
	FooterTitleStyle lipgloss.Style
	FooterKeyStyle   lipgloss.Style

	StatusStyle lipgloss.Style
	ModalStyle  lipgloss.Style

	ModalTitleStyle        lipgloss.Style
	ModalHelpStyle         lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	TextErrorStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	MetaStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	DividerStyle = lipgloss.NewStyle().Foreground(p.Surface)

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TextPrimaryBoldStyle = TextPrimaryStyle.Bold(true)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Positive)
	TextForegroundBoldStyle = TextStyle.Bold(true)
	TextSurfaceStyle = lipgloss.NewStyle().Foreground(p.Surface)

	ChipStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(p.Background)
	ChipFocusedStyle = ChipStyle.Underline(true)
	ChipSelectedStyle = ChipStyle.
		Foreground(lipgloss.Color("#ffffff")).
		Background(p.Selected)

	WordCursorStyle = lipgloss.NewStyle().Underline(true).Foreground(p.Primary)
	BadgeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Background)

	SearchStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	SearchActiveStyle = SearchStyle.BorderForeground(p.Primary)

	FooterStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false, false, false).
		BorderForeground(p.Surface).
		Padding(0, 2)
	FooterTitleStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	FooterKeyStyle = lipgloss.NewStyle().Foreground(p.Muted).Width(14)

	StatusStyle = lipgloss.NewStyle().Foreground(p.Muted).Background(p.Surface).Padding(0, 1)
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(p.Foreground)
	ToastInfoStyle = toast.BorderForeground(p.Primary)
	ToastWarningStyle = toast.BorderForeground(p.Warning)
	ToastErrorStyle = toast.BorderForeground(p.Negative)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Negative)

	ModalTitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	ModalHelpStyle = lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1)
	HelpDialogSectionStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
}

// SentimentColor maps a sentiment polarity to the palette.
func SentimentColor(p transcript.Polarity) color.Color {
	switch p {
	case transcript.Positive:
		return CurrentPalette.Positive
	case transcript.Negative:
		return CurrentPalette.Negative
	default:
		return CurrentPalette.Neutral
	}
}

// HighlightStyle colors highlighted transcript text for a polarity.
func HighlightStyle(p transcript.Polarity) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SentimentColor(p)).Bold(true)
}

// ChipColorStyle returns the chip style filled with the polarity color.
func ChipColorStyle(p transcript.Polarity) lipgloss.Style {
	return ChipStyle.Background(SentimentColor(p))
}

func init() {
	SetTheme(themes[DefaultTheme])
}
