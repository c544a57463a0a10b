package renderer

import (
	"fmt"

	"github.com/dshills/skimread/internal/config"
	"github.com/dshills/skimread/internal/renderer/core"
)

// Theme holds the resolved styles used to paint a frame.
type Theme struct {
	Text    core.Style
	Match   core.Style
	Current core.Style
	Status  core.Style
}

// NewTheme resolves the hex colors of a theme configuration.
func NewTheme(tc config.ThemeConfig) (Theme, error) {
	var t Theme
	var err error

	if t.Text, err = style("foreground", tc.Foreground, "background", tc.Background); err != nil {
		return Theme{}, err
	}
	if t.Match, err = style("matchForeground", tc.MatchForeground, "matchBackground", tc.MatchBackground); err != nil {
		return Theme{}, err
	}
	if t.Current, err = style("currentForeground", tc.CurrentForeground, "currentBackground", tc.CurrentBackground); err != nil {
		return Theme{}, err
	}
	if t.Status, err = style("statusForeground", tc.StatusForeground, "statusBackground", tc.StatusBackground); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// DefaultTheme returns the theme of the built-in configuration.
func DefaultTheme() Theme {
	t, err := NewTheme(config.Default().Theme)
	if err != nil {
		panic(fmt.Sprintf("renderer: invalid default theme: %v", err))
	}
	return t
}

func style(fgName, fg, bgName, bg string) (core.Style, error) {
	fc, err := core.ColorFromHex(fg)
	if err != nil {
		return core.Style{}, fmt.Errorf("theme.%s: %w", fgName, err)
	}
	bc, err := core.ColorFromHex(bg)
	if err != nil {
		return core.Style{}, fmt.Errorf("theme.%s: %w", bgName, err)
	}
	return core.NewStyle(fc, bc), nil
}
