// Package theme maps the document's semantic style roles onto CSS classes and
// generates the stylesheet that gives those classes their look.
//
// Widgets never emit inline presentation. They tag host nodes with a
// [StyleRole], and the [StyleResolver] in scope (normally a *ThemeData
// provided by the [Theme] inherited widget) turns the role into class names.
package theme

import (
	"fmt"
	"strings"

	"github.com/go-drift/folio/pkg/graphics"
)

// Brightness indicates whether a theme is light or dark.
type Brightness int

const (
	// BrightnessLight is a light theme with dark text on light backgrounds.
	BrightnessLight Brightness = iota
	// BrightnessDark is a dark theme with light text on dark backgrounds.
	BrightnessDark
)

func (b Brightness) String() string {
	if b == BrightnessDark {
		return "dark"
	}
	return "light"
}

// ParseBrightness parses "light" or "dark". The empty string is light.
func ParseBrightness(s string) (Brightness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return BrightnessLight, nil
	case "dark":
		return BrightnessDark, nil
	default:
		return BrightnessLight, fmt.Errorf("theme: unknown brightness %q", s)
	}
}

// DefaultBreakpoint is the viewport width in pixels at which multi-column
// regions switch from one column to two.
const DefaultBreakpoint = 768

// DefaultClassPrefix prefixes every generated class name.
const DefaultClassPrefix = "folio-"

// ThemeData contains all theme configuration for a document.
type ThemeData struct {
	// ColorScheme defines the color palette.
	ColorScheme ColorScheme

	// TextTheme defines text styles.
	TextTheme TextTheme

	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness

	// Breakpoint is the min-width media query, in pixels, for two columns.
	Breakpoint int

	// ClassPrefix is prepended to role names to form class names.
	ClassPrefix string

	// MaxContentWidth bounds the article column, in pixels.
	MaxContentWidth int
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	colors := LightColorScheme()
	return &ThemeData{
		ColorScheme:     colors,
		TextTheme:       DefaultTextTheme(),
		Brightness:      BrightnessLight,
		Breakpoint:      DefaultBreakpoint,
		ClassPrefix:     DefaultClassPrefix,
		MaxContentWidth: 860,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	t := DefaultLightTheme()
	t.ColorScheme = DarkColorScheme()
	t.Brightness = BrightnessDark
	return t
}

// ThemeFor returns the default theme for brightness.
func ThemeFor(brightness Brightness) *ThemeData {
	if brightness == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

// CopyWith returns a new ThemeData with the specified fields overridden.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, textTheme *TextTheme, brightness *Brightness) *ThemeData {
	result := *t
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if textTheme != nil {
		result.TextTheme = *textTheme
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return &result
}

// WithBreakpoint returns a copy of the theme using px as the two-column
// breakpoint. Non-positive values restore the default.
func (t *ThemeData) WithBreakpoint(px int) *ThemeData {
	result := *t
	if px <= 0 {
		px = DefaultBreakpoint
	}
	result.Breakpoint = px
	return &result
}

// ClassFor implements [StyleResolver].
func (t *ThemeData) ClassFor(role StyleRole) string {
	prefix := t.ClassPrefix
	if prefix == "" {
		prefix = DefaultClassPrefix
	}
	return prefix + role.String()
}

func (t *ThemeData) breakpoint() int {
	if t.Breakpoint <= 0 {
		return DefaultBreakpoint
	}
	return t.Breakpoint
}

// ColorScheme is the document palette.
type ColorScheme struct {
	Background    graphics.Color
	OnBackground  graphics.Color
	Muted         graphics.Color
	Subtle        graphics.Color
	Surface       graphics.Color
	Border        graphics.Color
	Primary       graphics.Color
	OnPrimary     graphics.Color
	Accent        graphics.Color
	AccentSurface graphics.Color
	CodeSurface   graphics.Color
	OnCode        graphics.Color
	Error         graphics.Color
	ErrorSurface  graphics.Color
}

// LightColorScheme returns the default light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Background:    graphics.RGB(255, 255, 255),
		OnBackground:  graphics.RGB(17, 24, 39),
		Muted:         graphics.RGB(75, 85, 99),
		Subtle:        graphics.RGB(107, 114, 128),
		Surface:       graphics.RGB(255, 255, 255),
		Border:        graphics.RGB(229, 231, 235),
		Primary:       graphics.RGB(30, 64, 175),
		OnPrimary:     graphics.RGB(255, 255, 255),
		Accent:        graphics.RGB(217, 119, 6),
		AccentSurface: graphics.RGB(255, 251, 235),
		CodeSurface:   graphics.RGB(243, 244, 246),
		OnCode:        graphics.RGB(17, 24, 39),
		Error:         graphics.RGB(185, 28, 28),
		ErrorSurface:  graphics.RGB(254, 242, 242),
	}
}

// DarkColorScheme returns the default dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Background:    graphics.RGB(17, 24, 39),
		OnBackground:  graphics.RGB(243, 244, 246),
		Muted:         graphics.RGB(209, 213, 219),
		Subtle:        graphics.RGB(156, 163, 175),
		Surface:       graphics.RGB(31, 41, 55),
		Border:        graphics.RGB(55, 65, 81),
		Primary:       graphics.RGB(147, 197, 253),
		OnPrimary:     graphics.RGB(17, 24, 39),
		Accent:        graphics.RGB(251, 191, 36),
		AccentSurface: graphics.RGB(69, 26, 3),
		CodeSurface:   graphics.RGB(3, 7, 18),
		OnCode:        graphics.RGB(229, 231, 235),
		Error:         graphics.RGB(252, 165, 165),
		ErrorSurface:  graphics.RGB(69, 10, 10),
	}
}

// TextStyle is one typographic setting.
type TextStyle struct {
	// FontSize in rem.
	FontSize float64
	// FontWeight as a CSS numeric weight. Zero inherits.
	FontWeight int
	// Italic selects the italic face.
	Italic bool
	// LineHeight as a unitless multiplier. Zero inherits.
	LineHeight float64
}

// TextTheme groups the text styles used by the document.
type TextTheme struct {
	SerifFamily string
	SansFamily  string
	MonoFamily  string

	Title      TextStyle
	Subtitle   TextStyle
	Heading    TextStyle
	Subheading TextStyle
	Caption    TextStyle
	Body       TextStyle
	Small      TextStyle
	Code       TextStyle
}

// DefaultTextTheme returns the default journal typography.
func DefaultTextTheme() TextTheme {
	return TextTheme{
		SerifFamily: `Georgia, "Times New Roman", serif`,
		SansFamily:  `system-ui, -apple-system, "Segoe UI", sans-serif`,
		MonoFamily:  `ui-monospace, SFMono-Regular, Menlo, Consolas, monospace`,
		Title:       TextStyle{FontSize: 1.5, FontWeight: 600, LineHeight: 1.25},
		Subtitle:    TextStyle{FontSize: 1, Italic: true},
		Heading:     TextStyle{FontSize: 1.25, FontWeight: 600, LineHeight: 1.3},
		Subheading:  TextStyle{FontSize: 1.0625, FontWeight: 600},
		Caption:     TextStyle{FontSize: 1.125, FontWeight: 500},
		Body:        TextStyle{FontSize: 1, LineHeight: 1.7},
		Small:       TextStyle{FontSize: 0.875, LineHeight: 1.5},
		Code:        TextStyle{FontSize: 0.875, LineHeight: 1.5},
	}
}
