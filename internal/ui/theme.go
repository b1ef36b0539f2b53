package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"VideoVault/internal/util"
)

// CompactTheme is the VideoVault window theme: the default fyne theme with
// higher contrast inputs, status colors shared with the terminal palette, and
// tighter padding so both job pages fit a small window.
type CompactTheme struct{}

var _ fyne.Theme = (*CompactTheme)(nil)

// NewCompactTheme creates the window theme.
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns the color for the specified name and variant.
func (c *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	light := variant == theme.VariantLight
	switch name {
	case theme.ColorNameForeground:
		if light {
			return color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
		}
		return color.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}

	case theme.ColorNamePlaceHolder:
		if light {
			return color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
		}
		return color.RGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF}

	case theme.ColorNameInputBackground:
		if light {
			return color.RGBA{R: 0xF8, G: 0xF8, B: 0xF8, A: 0xFF}
		}
		return color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xFF}

	case theme.ColorNameInputBorder:
		if light {
			return color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
		}
		return color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}

	// Job status lines
	case theme.ColorNameError:
		return util.RED
	case theme.ColorNameSuccess:
		if light {
			return color.RGBA{R: 0x1E, G: 0x8A, B: 0x1E, A: 0xFF}
		}
		return util.GREEN
	case theme.ColorNameWarning:
		return util.YELLOW

	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

// Font returns the font resource for the specified text style.
func (c *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified name.
func (c *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size for the specified name.
func (c *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNamePadding, theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius:
		return 4
	default:
		return theme.DefaultTheme().Size(name)
	}
}
