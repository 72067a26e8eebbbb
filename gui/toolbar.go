package gui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"mapengine/brush"
)

// ToolbarCallbacks wires toolbar actions back into the viewer.
type ToolbarCallbacks struct {
	OnTool         func(brush.Tool)
	OnCycleBiomes  func() string
	OnCycleHeights func() string
	OnGlobalSmooth func()
	OnExport       func()
	OnSave         func()
	OnLoad         func()
}

// Toolbar is the operator panel along the left screen edge.
type Toolbar struct {
	ui *ebitenui.UI

	biomesLabel  *widget.Text
	heightsLabel *widget.Text
	toolLabel    *widget.Text
}

// toolButtons is the brush palette shown on the toolbar.
var toolButtons = []brush.Tool{
	brush.ToolRaise,
	brush.ToolLower,
	brush.ToolFlatten,
	brush.ToolSmooth,
	brush.ToolRoughen,
	brush.ToolTempUp,
	brush.ToolTempDown,
	brush.ToolMoistUp,
	brush.ToolMoistDown,
}

// NewToolbar builds the toolbar UI.
func NewToolbar(cb ToolbarCallbacks) *Toolbar {
	t := &Toolbar{}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelColor),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.Insets{Left: 6, Right: 6, Top: 6, Bottom: 6}),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	labelColor := color.NRGBA{0xdf, 0xf4, 0xff, 0xff}
	t.toolLabel = widget.NewText(widget.TextOpts.Text("tool: raise", smallFace, labelColor))
	panel.AddChild(t.toolLabel)

	for _, tool := range toolButtons {
		tool := tool
		panel.AddChild(CreateButtonWithConfig(ButtonConfig{
			Text: tool.String(),
			OnClick: func() {
				if cb.OnTool != nil {
					cb.OnTool(tool)
				}
				t.toolLabel.Label = fmt.Sprintf("tool: %s", tool)
			},
		}))
	}

	t.biomesLabel = widget.NewText(widget.TextOpts.Text("biomes: fancy", smallFace, labelColor))
	panel.AddChild(t.biomesLabel)
	panel.AddChild(CreateButtonWithConfig(ButtonConfig{
		Text: "biomes mode",
		OnClick: func() {
			if cb.OnCycleBiomes != nil {
				t.biomesLabel.Label = "biomes: " + cb.OnCycleBiomes()
			}
		},
	}))

	t.heightsLabel = widget.NewText(widget.TextOpts.Text("heights: contours", smallFace, labelColor))
	panel.AddChild(t.heightsLabel)
	panel.AddChild(CreateButtonWithConfig(ButtonConfig{
		Text: "heights mode",
		OnClick: func() {
			if cb.OnCycleHeights != nil {
				t.heightsLabel.Label = "heights: " + cb.OnCycleHeights()
			}
		},
	}))

	panel.AddChild(CreateButtonWithConfig(ButtonConfig{Text: "global smooth", OnClick: cb.OnGlobalSmooth}))
	panel.AddChild(CreateButtonWithConfig(ButtonConfig{Text: "export", OnClick: cb.OnExport}))
	panel.AddChild(CreateButtonWithConfig(ButtonConfig{Text: "save", OnClick: cb.OnSave}))
	panel.AddChild(CreateButtonWithConfig(ButtonConfig{Text: "load", OnClick: cb.OnLoad}))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(panel)

	t.ui = &ebitenui.UI{Container: root}
	return t
}

// Update advances widget state; call once per frame.
func (t *Toolbar) Update() {
	t.ui.Update()
}

// Draw renders the toolbar over the scene.
func (t *Toolbar) Draw(screen *ebiten.Image) {
	t.ui.Draw(screen)
}
