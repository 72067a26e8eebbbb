// Command mapviewer runs the interactive map editor: the composited scene
// with the brush toolbar, hover highlighting, scene persistence and image
// export.
package main

import (
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mapengine/brush"
	"mapengine/config"
	"mapengine/features"
	"mapengine/geometry"
	"mapengine/gui"
	"mapengine/mapgrid"
	"mapengine/persist"
	"mapengine/rendering"
)

const (
	settingsPath = "settings.json"
	scenePath    = "scene.json"
	exportPath   = "export.png"

	// pointer positions left of this are the toolbar's
	toolbarWidth = 110
)

// Game is the ebiten application state.
type Game struct {
	comp    *rendering.Compositor
	scene   *rendering.Scene
	editor  *brush.Editor
	stroke  *brush.Stroke
	toolbar *gui.Toolbar

	tool  brush.Tool
	dirty bool
}

func newGame() *Game {
	grid := demoGrid()
	comp := rendering.NewCompositor(grid, nil, nil, config.CurrentSettings, rendering.FaceMetrics{})
	seedFeatures(comp.Features())

	g := &Game{
		comp:   comp,
		scene:  rendering.NewScene(config.DefaultSceneWidth, config.DefaultSceneHeight),
		editor: brush.NewEditor(grid),
		tool:   brush.ToolRaise,
		dirty:  true,
	}

	g.toolbar = gui.NewToolbar(gui.ToolbarCallbacks{
		OnTool: func(t brush.Tool) { g.tool = t },
		OnCycleBiomes: func() string {
			mode := g.comp.CycleBiomesMode()
			g.dirty = true
			return mode.String()
		},
		OnCycleHeights: func() string {
			mode := g.comp.CycleHeightsMode()
			g.dirty = true
			return mode.String()
		},
		OnGlobalSmooth: g.globalSmooth,
		OnExport:       g.export,
		OnSave:         g.save,
		OnLoad:         g.load,
	})
	return g
}

// demoGrid builds the starting terrain: a couple of height blobs with
// moisture falling off from the west and temperature from the north.
func demoGrid() *mapgrid.Grid {
	g := mapgrid.NewFlatGrid(config.DefaultGridRows, config.DefaultGridCols,
		config.DefaultGridCellSize, geometry.Rect{})

	hills := [][3]float64{ // col, row, height
		{25, 30, 90}, {60, 20, 70}, {75, 55, 85}, {40, 60, 50},
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			h := 0.0
			for _, hill := range hills {
				d := math.Hypot(float64(c)-hill[0], float64(r)-hill[1])
				h += hill[2] * math.Exp(-d*d/250)
			}
			idx := g.Index(r, c)
			g.Heights[idx] = h
			g.Moisture[idx] = 1 + (g.Cols-c)*5/g.Cols
			g.Temperature[idx] = 1 + (g.Rows-r)*5/g.Rows
		}
	}
	return g
}

func seedFeatures(mgr *features.Manager) {
	mgr.AddRiver(features.River{
		Name: "Silverrun",
		Points: []features.RiverPoint{
			{X: 180, Y: 120, Width: 4},
			{X: 340, Y: 260, Width: 8},
			{X: 520, Y: 330, Width: 12},
			{X: 780, Y: 420, Width: 16},
		},
	})
	mgr.AddRegion(features.Region{
		Name: "The Old March",
		Points: []mgl64.Vec2{
			{500, 300}, {900, 280}, {1000, 560}, {700, 700}, {460, 560},
		},
		Closed:           true,
		FillColor:        0x7a3b2e,
		FillAlpha:        0.15,
		StrokeColor:      0x7a3b2e,
		StrokeAlpha:      0.9,
		StrokeWidth:      3,
		SmoothIterations: 2,
	})
}

// Update handles input and advances animations.
func (g *Game) Update() error {
	g.toolbar.Update()

	x, y := ebiten.CursorPosition()
	wx, wy := float64(x), float64(y)
	overToolbar := x < toolbarWidth

	// brush radius on the mouse wheel
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.editor.Radius = math.Max(8, math.Min(256, g.editor.Radius+wheelY*8))
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !overToolbar {
		if g.stroke == nil {
			g.stroke = g.editor.BeginStroke(g.tool)
		}
		g.stroke.Apply(wx, wy)
	} else if g.stroke != nil {
		if err := g.stroke.Commit(); err == nil {
			g.dirty = true
		}
		g.stroke = nil
	} else if !overToolbar {
		if g.comp.Hover(wx, wy) {
			g.dirty = true
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.comp.CycleBiomesMode()
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.comp.CycleHeightsMode()
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.globalSmooth()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.export()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.load()
	}

	if g.dirty {
		g.scene.Rebuild(g.comp)
		g.dirty = false
	}
	g.scene.Update(g.comp, 1.0/float64(ebiten.TPS()))
	return nil
}

// Draw composites the scene and the toolbar.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(g.comp, screen)
	g.toolbar.Draw(screen)
}

// Layout reports the fixed scene size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.DefaultSceneWidth, config.DefaultSceneHeight
}

func (g *Game) globalSmooth() {
	if err := brush.GlobalSmooth(g.comp.Grid(), 1, config.CurrentSettings.GlobalSmoothStrength); err == nil {
		g.editor.SetGrid(g.comp.Grid())
		g.dirty = true
	}
}

func (g *Game) export() {
	img, err := rendering.ExportImage(g.comp, config.DefaultSceneWidth, config.DefaultSceneHeight, 1.0)
	if err != nil {
		log.Printf("WARNING: export failed: %v", err)
		return
	}
	b := img.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	img.ReadPixels(pix)
	rgba := &image.RGBA{Pix: pix, Stride: 4 * b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}

	f, err := os.Create(exportPath)
	if err != nil {
		log.Printf("WARNING: export failed: %v", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, rgba); err != nil {
		log.Printf("WARNING: export failed: %v", err)
		return
	}
	log.Printf("Exported scene to %s", exportPath)
}

func (g *Game) chunks() []persist.DatasetChunk {
	return []persist.DatasetChunk{
		&persist.GridChunk{Grid: g.comp.Grid(), OnLoad: func(ng *mapgrid.Grid) {
			g.comp.SetGrid(ng)
			g.editor.SetGrid(ng)
		}},
		&persist.RiversChunk{Manager: g.comp.Features()},
		&persist.RegionsChunk{Manager: g.comp.Features()},
	}
}

func (g *Game) save() {
	if err := persist.SaveScene(scenePath, g.chunks()...); err != nil {
		log.Printf("WARNING: save failed: %v", err)
		return
	}
	log.Printf("Saved scene to %s", scenePath)
}

func (g *Game) load() {
	if err := persist.LoadScene(scenePath, g.chunks()...); err != nil {
		log.Printf("WARNING: load failed: %v", err)
		return
	}
	g.dirty = true
	log.Printf("Loaded scene from %s", scenePath)
}

func main() {
	config.LoadUserSettings(settingsPath)

	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
