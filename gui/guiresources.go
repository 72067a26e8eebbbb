// Package gui builds the operator toolbar: brush tool selection, layer mode
// cycling and the scene commands, rendered with ebitenui widgets.
package gui

import (
	"image/color"

	e_image "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"golang.org/x/image/font"

	"mapengine/rendering"
)

var smallFace = rendering.FaceForSize(14)

// Widget background colors, flat nine-slices so no image assets are needed.
var (
	panelColor         = e_image.NewNineSliceColor(color.NRGBA{0x13, 0x1a, 0x22, 0xe0})
	buttonIdleColor    = e_image.NewNineSliceColor(color.NRGBA{0x2a, 0x39, 0x44, 0xff})
	buttonHoverColor   = e_image.NewNineSliceColor(color.NRGBA{0x4b, 0x68, 0x7a, 0xff})
	buttonPressedColor = e_image.NewNineSliceColor(color.NRGBA{0x1d, 0x28, 0x30, 0xff})
)

var buttonImage = &widget.ButtonImage{
	Idle:    buttonIdleColor,
	Hover:   buttonHoverColor,
	Pressed: buttonPressedColor,
}

var buttonTextColor = &widget.ButtonTextColor{
	Idle: color.NRGBA{0xdf, 0xf4, 0xff, 0xff},
}

// ButtonConfig provides declarative button configuration.
type ButtonConfig struct {
	Text     string
	MinWidth int
	FontFace font.Face
	OnClick  func()
}

// CreateButtonWithConfig creates a toolbar button from config.
func CreateButtonWithConfig(config ButtonConfig) *widget.Button {
	if config.MinWidth == 0 {
		config.MinWidth = 90
	}
	if config.FontFace == nil {
		config.FontFace = smallFace
	}

	opts := []widget.ButtonOpt{
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(config.MinWidth, 28),
		),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text(config.Text, config.FontFace, buttonTextColor),
		widget.ButtonOpts.TextPadding(widget.Insets{Left: 8, Right: 8, Top: 4, Bottom: 4}),
	}
	if config.OnClick != nil {
		opts = append(opts, widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			config.OnClick()
		}))
	}
	return widget.NewButton(opts...)
}
