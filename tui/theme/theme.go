package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/plantview/config"
)

const defaultThemeName = "kanagawa"

// Colors encapsulates the palette used by a theme. lipgloss.TerminalColor
// allows a mix of adaptive and static colors.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
	SubtleBackground   lipgloss.TerminalColor
}

// Theme holds the pre-configured styles of the dashboard.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	Box        lipgloss.Style
	DetailsBox lipgloss.Style

	Highlight lipgloss.Style
	Accent    lipgloss.Style

	// Board
	Category     lipgloss.Style
	Block        lipgloss.Style
	BlockFocused lipgloss.Style

	// Overlays
	Tooltip      lipgloss.Style
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuItemHot  lipgloss.Style
	Notice       lipgloss.Style
	NoticeError  lipgloss.Style
	Footer       lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": kanagawa,
	"gruvbox":  gruvbox,
	"terminal": terminal,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
}

// DefaultTheme is the theme selected by PLANTVIEW_THEME or the config file.
var DefaultTheme = NewThemeWithName(getThemeName())

// Names lists the available theme names.
func Names() []string {
	return []string{"kanagawa", "gruvbox", "terminal"}
}

// NewThemeWithName constructs a theme from a palette name. Unknown names
// fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	build, ok := themeRegistry[key]
	if !ok {
		key = defaultThemeName
		build = themeRegistry[key]
	}
	return newThemeFromColors(build(), key)
}

// StatusStyle returns the style for a lower-cased module status.
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "online":
		return lipgloss.NewStyle().Foreground(t.Colors.Green).Bold(true)
	case "offline":
		return lipgloss.NewStyle().Foreground(t.Colors.Red).Bold(true)
	case "standby":
		return lipgloss.NewStyle().Foreground(t.Colors.Yellow).Bold(true)
	default:
		return t.Muted
	}
}

// StatusColor returns the border color used for a module block.
func (t *Theme) StatusColor(status string) lipgloss.TerminalColor {
	switch status {
	case "online":
		return t.Colors.Green
	case "offline":
		return t.Colors.Red
	case "standby":
		return t.Colors.Yellow
	default:
		return t.Colors.Border
	}
}

// RenderStatus renders text with the appropriate notice style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newThemeFromColors(colors Colors, name string) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().Bold(true).Foreground(colors.LightText),
		Title:  lipgloss.NewStyle().Bold(true).Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Cyan),
		TableBorder: lipgloss.NewStyle().
			Foreground(colors.Border),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(1, 2),
		DetailsBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colors.Violet).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().Foreground(colors.Orange).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),

		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Cyan),
		Block: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		BlockFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(0, 1),

		Tooltip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Violet).
			Background(colors.SubtleBackground).
			Padding(0, 1),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colors.Orange).
			Background(colors.SubtleBackground),
		MenuItem: lipgloss.NewStyle().
			Foreground(colors.LightText).
			Padding(0, 1),
		MenuItemHot: lipgloss.NewStyle().
			Foreground(colors.LightText).
			Background(colors.SelectedBackground).
			Bold(true).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Green).
			Padding(1, 3),
		NoticeError: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Red).
			Padding(1, 3),
		Footer: lipgloss.NewStyle().Foreground(colors.MutedText),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if name := normalizeThemeName(os.Getenv("PLANTVIEW_THEME")); name != "" {
		return name
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}
	if name := normalizeThemeName(cfg.TUI.Theme); name != "" {
		return name
	}
	return defaultThemeName
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// kanagawa pairs the Wave (light) and Dragon (dark) palettes.
func kanagawa() Colors {
	return Colors{
		Green:              adaptive("#4E7C5A", "#98BB6C"),
		Yellow:             adaptive("#A68A64", "#FF9E3B"),
		Red:                adaptive("#C34043", "#FF5D62"),
		Orange:             adaptive("#CC6B4E", "#FFA066"),
		Cyan:               adaptive("#5B8BBE", "#7E9CD8"),
		Violet:             adaptive("#674D7A", "#957FB8"),
		LightText:          adaptive("#2B2F42", "#DCD7BA"),
		MutedText:          adaptive("#6C7086", "#727169"),
		Border:             adaptive("#B5BDC5", "#363646"),
		SelectedBackground: adaptive("#E2E6F3", "#223249"),
		SubtleBackground:   adaptive("#F7F7FB", "#1F1F28"),
	}
}

func gruvbox() Colors {
	return Colors{
		Green:              adaptive("#98971A", "#B8BB26"),
		Yellow:             adaptive("#D79921", "#FABD2F"),
		Red:                adaptive("#CC241D", "#FB4934"),
		Orange:             adaptive("#D65D0E", "#FE8019"),
		Cyan:               adaptive("#458588", "#83A598"),
		Violet:             adaptive("#8F3F71", "#B16286"),
		LightText:          adaptive("#3C3836", "#EBDBB2"),
		MutedText:          adaptive("#928374", "#BDAE93"),
		Border:             adaptive("#D5C4A1", "#504945"),
		SelectedBackground: adaptive("#F2E5BC", "#32302F"),
		SubtleBackground:   adaptive("#FBF1C7", "#282828"),
	}
}

// terminal uses ANSI indices so the user's terminal palette applies.
func terminal() Colors {
	return Colors{
		Green:              lipgloss.Color("2"),
		Yellow:             lipgloss.Color("3"),
		Red:                lipgloss.Color("1"),
		Orange:             lipgloss.Color("208"),
		Cyan:               lipgloss.Color("6"),
		Violet:             lipgloss.Color("5"),
		LightText:          lipgloss.Color("7"),
		MutedText:          lipgloss.Color("8"),
		Border:             lipgloss.Color("8"),
		SelectedBackground: lipgloss.Color("8"),
		SubtleBackground:   lipgloss.Color("0"),
	}
}
