package lesson

import "errors"

var ErrThemeNotFound = errors.New("theme not found")

// ColorSlot is an abstract color role a block renders with; themes map slots
// to concrete gradients. Presentation-only: never stored on block data.
type ColorSlot string

const (
	SlotPrimary   ColorSlot = "primary"
	SlotSecondary ColorSlot = "secondary"
	SlotAccent    ColorSlot = "accent"
	SlotWarm      ColorSlot = "warm"
	SlotCool      ColorSlot = "cool"
)

type Theme struct {
	Name      string
	gradients map[ColorSlot]string
}

// Gradient resolves a slot to the theme's concrete CSS gradient.
func (t Theme) Gradient(slot ColorSlot) string {
	if g, ok := t.gradients[slot]; ok {
		return g
	}
	return t.gradients[SlotPrimary]
}

const DefaultThemeName = "modern"

var themes = map[string]Theme{
	"modern": {
		Name: "modern",
		gradients: map[ColorSlot]string{
			SlotPrimary:   "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
			SlotSecondary: "linear-gradient(135deg, #2193b0 0%, #6dd5ed 100%)",
			SlotAccent:    "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
			SlotWarm:      "linear-gradient(135deg, #f6d365 0%, #fda085 100%)",
			SlotCool:      "linear-gradient(135deg, #89f7fe 0%, #66a6ff 100%)",
		},
	},
	"vibrant": {
		Name: "vibrant",
		gradients: map[ColorSlot]string{
			SlotPrimary:   "linear-gradient(135deg, #fa709a 0%, #fee140 100%)",
			SlotSecondary: "linear-gradient(135deg, #ff0844 0%, #ffb199 100%)",
			SlotAccent:    "linear-gradient(135deg, #00c6fb 0%, #005bea 100%)",
			SlotWarm:      "linear-gradient(135deg, #f83600 0%, #f9d423 100%)",
			SlotCool:      "linear-gradient(135deg, #13547a 0%, #80d0c7 100%)",
		},
	},
	"professional": {
		Name: "professional",
		gradients: map[ColorSlot]string{
			SlotPrimary:   "linear-gradient(135deg, #29323c 0%, #485563 100%)",
			SlotSecondary: "linear-gradient(135deg, #435970 0%, #7ba2c9 100%)",
			SlotAccent:    "linear-gradient(135deg, #1e3c72 0%, #2a5298 100%)",
			SlotWarm:      "linear-gradient(135deg, #8e9eab 0%, #eef2f3 100%)",
			SlotCool:      "linear-gradient(135deg, #284b63 0%, #3c6e71 100%)",
		},
	},
}

// ThemeByName returns the named theme, the default theme for an empty name,
// or ErrThemeNotFound.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}
	if t, ok := themes[name]; ok {
		return t, nil
	}
	return Theme{}, ErrThemeNotFound
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	return []string{"modern", "vibrant", "professional"}
}

// Difficulty badge colors, fixed three-level scale.
var difficultyColors = map[string]string{
	"easy":   "#22c55e", // green
	"medium": "#eab308", // yellow
	"hard":   "#ef4444", // red
}

// DifficultyColor returns the badge color for a difficulty level; unknown
// levels get the medium color.
func DifficultyColor(level string) string {
	if c, ok := difficultyColors[level]; ok {
		return c
	}
	return difficultyColors["medium"]
}
