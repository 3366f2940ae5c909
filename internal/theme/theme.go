package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the persisted light/dark preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// PreferenceKey is the fixed key the theme is stored under
	PreferenceKey = "theme"
)

// Parse accepts "light" or "dark"
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q, must be light or dark", s)
	}
}

// Store persists preferences across sessions
type Store interface {
	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error
}

// Controller owns the theme flag. Every change is applied to the global
// lipgloss renderer and written to the store.
type Controller struct {
	store Store
	dark  bool
}

// NewController reads the persisted theme before anything is rendered.
// Absent or unrecognized values mean light.
func NewController(store Store) (*Controller, error) {
	value, ok, err := store.GetPreference(PreferenceKey)
	if err != nil {
		return nil, fmt.Errorf("read theme preference: %w", err)
	}
	c := &Controller{store: store, dark: ok && Theme(value) == Dark}
	c.apply()
	return c, nil
}

// Current returns the active theme
func (c *Controller) Current() Theme {
	if c.dark {
		return Dark
	}
	return Light
}

// IsDark reports whether the dark palette is active
func (c *Controller) IsDark() bool {
	return c.dark
}

// Toggle flips between light and dark and returns the new theme
func (c *Controller) Toggle() (Theme, error) {
	if err := c.setDark(!c.dark); err != nil {
		return c.Current(), err
	}
	return c.Current(), nil
}

// Set switches to t
func (c *Controller) Set(t Theme) error {
	return c.setDark(t == Dark)
}

func (c *Controller) setDark(dark bool) error {
	c.dark = dark
	c.apply()
	if err := c.store.SetPreference(PreferenceKey, string(c.Current())); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}

func (c *Controller) apply() {
	lipgloss.SetHasDarkBackground(c.dark)
}

// Icon is the toggle glyph: the sun offers light while dark is active
func (c *Controller) Icon() string {
	if c.dark {
		return "☀️"
	}
	return "🌙"
}
