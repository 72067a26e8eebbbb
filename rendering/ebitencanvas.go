package rendering

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mapengine/common"
)

// whiteImage is the 1x1-ish source texture for DrawTriangles-based polygon
// fills, following the standard ebiten vector-drawing setup.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(whiteImage.Bounds().Inset(1)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenCanvas rasterizes the primitive stream onto an ebiten image. A world
// scale is applied to every coordinate, which is what the export path uses to
// render the same scene at a different resolution.
type EbitenCanvas struct {
	dst   *ebiten.Image
	scale float64

	// active mask state: while masked, primitives render into scratch, which
	// is composited through the mask at ClearMask. Nothing escapes the mask
	// polygon.
	maskImg *ebiten.Image
	scratch *ebiten.Image
}

// NewEbitenCanvas wraps a destination image with a world-to-pixel scale.
func NewEbitenCanvas(dst *ebiten.Image, scale float64) *EbitenCanvas {
	if scale <= 0 {
		scale = 1
	}
	return &EbitenCanvas{dst: dst, scale: scale}
}

// target is the image primitives currently draw to.
func (c *EbitenCanvas) target() *ebiten.Image {
	if c.scratch != nil {
		return c.scratch
	}
	return c.dst
}

// BeginLayer is a marker: the compositor already emits layers bottom-up, so
// drawing proceeds directly onto the destination in order.
func (c *EbitenCanvas) BeginLayer(name string, z int) {}

// EndLayer closes the current layer marker.
func (c *EbitenCanvas) EndLayer() {}

func (c *EbitenCanvas) sx(v float64) float32 { return float32(v * c.scale) }

// Fill rasterizes a polygon with holes using an even-odd fill over the
// concatenated ring list.
func (c *EbitenCanvas) Fill(col common.RGB, alpha float64, poly Polygon) {
	if len(poly.Outer) < 3 {
		return
	}
	var path vector.Path
	appendRing(&path, poly.Outer, c.scale)
	for _, hole := range poly.Holes {
		if len(hole) >= 3 {
			appendRing(&path, hole, c.scale)
		}
	}

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	nrgba := col.NRGBA(alpha)
	r := float32(nrgba.R) / 255
	g := float32(nrgba.G) / 255
	b := float32(nrgba.B) / 255
	a := float32(nrgba.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.EvenOdd,
		AntiAlias: true,
	}
	c.target().DrawTriangles(vs, is, whiteSubImage, op)
}

func appendRing(path *vector.Path, ring []mgl64.Vec2, scale float64) {
	path.MoveTo(float32(ring[0].X()*scale), float32(ring[0].Y()*scale))
	for _, p := range ring[1:] {
		path.LineTo(float32(p.X()*scale), float32(p.Y()*scale))
	}
	path.Close()
}

// Stroke draws a polyline segment by segment.
func (c *EbitenCanvas) Stroke(col common.RGB, alpha, width float64, pts []mgl64.Vec2, closed bool) {
	if len(pts) < 2 {
		return
	}
	nrgba := col.NRGBA(alpha)
	w := float32(width * c.scale)
	if w < 1 {
		w = 1
	}
	dst := c.target()
	last := len(pts) - 1
	if closed {
		last = len(pts)
	}
	for i := 0; i < last; i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, c.sx(a.X()), c.sx(a.Y()), c.sx(b.X()), c.sx(b.Y()), w, nrgba, true)
	}
}

// Circle draws a filled or stroked circle.
func (c *EbitenCanvas) Circle(col common.RGB, alpha float64, center mgl64.Vec2, radius float64, filled bool) {
	nrgba := col.NRGBA(alpha)
	if filled {
		vector.DrawFilledCircle(c.target(), c.sx(center.X()), c.sx(center.Y()), float32(radius*c.scale), nrgba, true)
	} else {
		vector.StrokeCircle(c.target(), c.sx(center.X()), c.sx(center.Y()), float32(radius*c.scale), 1, nrgba, true)
	}
}

// Text draws a label centered on pos: outline first as offset copies, then
// the fill on top. Rotation happens around the anchor.
func (c *EbitenCanvas) Text(pos mgl64.Vec2, s string, style TextStyle) {
	if s == "" {
		return
	}
	face := FaceForSize(style.Size * c.scale)
	bounds := text.BoundString(face, s)
	halfW := float64(bounds.Dx()) / 2
	halfH := float64(bounds.Dy()) / 2

	draw := func(dx, dy float64, col color.Color) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-halfW+dx, halfH+dy)
		op.GeoM.Rotate(style.Rotation)
		op.GeoM.Translate(pos.X()*c.scale, pos.Y()*c.scale)
		op.ColorScale.ScaleWithColor(col)
		text.DrawWithOptions(c.target(), s, face, op)
	}

	if style.OutlineWidth > 0 {
		o := style.OutlineWidth * c.scale
		outline := style.OutlineColor.NRGBA(style.Alpha)
		for _, off := range [8][2]float64{
			{-o, 0}, {o, 0}, {0, -o}, {0, o},
			{-o, -o}, {-o, o}, {o, -o}, {o, o},
		} {
			draw(off[0], off[1], outline)
		}
	}
	draw(0, 0, style.Color.NRGBA(style.Alpha))
}

// SetMask begins masked drawing: primitives render into a scratch image that
// is clipped by the polygon at ClearMask.
func (c *EbitenCanvas) SetMask(poly Polygon) {
	c.ClearMask()
	w, h := c.dst.Bounds().Dx(), c.dst.Bounds().Dy()
	c.maskImg = ebiten.NewImage(w, h)
	c.scratch = ebiten.NewImage(w, h)

	// Rasterize the mask polygon (with holes) in opaque white.
	maskCanvas := &EbitenCanvas{dst: c.maskImg, scale: c.scale}
	maskCanvas.Fill(0xffffff, 1.0, poly)
}

// ClearMask composites the scratch image through the mask and drops the mask
// state.
func (c *EbitenCanvas) ClearMask() {
	if c.scratch == nil {
		return
	}
	scratch, mask := c.scratch, c.maskImg
	c.scratch, c.maskImg = nil, nil

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationIn
	scratch.DrawImage(mask, op)
	c.dst.DrawImage(scratch, nil)
	scratch.Deallocate()
	mask.Deallocate()
}
