package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI chrome. The arena itself is
// monochrome braille; themes color the panels around it.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color

	// Material swatch colors for the spawn panel.
	Rigid lipgloss.Color
	Semi  lipgloss.Color
	Soft  lipgloss.Color
}

// Available themes
var (
	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff8844"),
		Secondary: lipgloss.Color("#ffcc66"),
		Accent:    lipgloss.Color("#ff4422"),
		Text:      lipgloss.Color("#fff0e0"),
		Muted:     lipgloss.Color("#775544"),
		Warning:   lipgloss.Color("#ffee00"),
		Rigid:     lipgloss.Color("#969696"),
		Semi:      lipgloss.Color("#c89664"),
		Soft:      lipgloss.Color("#64c896"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
		Rigid:     lipgloss.Color("#88cc88"),
		Semi:      lipgloss.Color("#44ff44"),
		Soft:      lipgloss.Color("#ccffcc"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Warning:   lipgloss.Color("#ffaa00"),
		Rigid:     lipgloss.Color("#969696"),
		Semi:      lipgloss.Color("#c89664"),
		Soft:      lipgloss.Color("#64c896"),
	}

	// Default theme
	CurrentTheme = ThemeEmber

	// All available themes
	Themes = []Theme{
		ThemeEmber,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// SetTheme changes the current theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme advances CurrentTheme to the next entry, wrapping around.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
