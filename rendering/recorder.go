package rendering

import (
	"github.com/go-gl/mathgl/mgl64"

	"mapengine/common"
)

// Op tags a recorded primitive.
type Op string

const (
	OpBeginLayer Op = "beginLayer"
	OpEndLayer   Op = "endLayer"
	OpFill       Op = "fill"
	OpStroke     Op = "stroke"
	OpCircle     Op = "circle"
	OpText       Op = "text"
	OpSetMask    Op = "setMask"
	OpClearMask  Op = "clearMask"
)

// Primitive is one recorded drawing call.
type Primitive struct {
	Op     Op
	Layer  string
	Z      int
	Color  common.RGB
	Alpha  float64
	Width  float64
	Points []mgl64.Vec2
	Closed bool
	Poly   Polygon
	Center mgl64.Vec2
	Radius float64
	Filled bool
	Text   string
	Style  TextStyle
	Masked bool
}

// Recorder is a Canvas that captures the primitive stream. Every primitive is
// stamped with the layer it was drawn into and whether a mask was active.
type Recorder struct {
	Ops []Primitive

	layerStack []struct {
		name string
		z    int
	}
	maskActive bool
	mask       Polygon
}

// NewRecorder returns an empty recording canvas.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) current() (string, int) {
	if len(r.layerStack) == 0 {
		return "", 0
	}
	top := r.layerStack[len(r.layerStack)-1]
	return top.name, top.z
}

func (r *Recorder) record(p Primitive) {
	p.Layer, p.Z = r.current()
	p.Masked = r.maskActive
	r.Ops = append(r.Ops, p)
}

func (r *Recorder) BeginLayer(name string, z int) {
	r.layerStack = append(r.layerStack, struct {
		name string
		z    int
	}{name, z})
	r.Ops = append(r.Ops, Primitive{Op: OpBeginLayer, Layer: name, Z: z})
}

func (r *Recorder) EndLayer() {
	name, z := r.current()
	if len(r.layerStack) > 0 {
		r.layerStack = r.layerStack[:len(r.layerStack)-1]
	}
	r.Ops = append(r.Ops, Primitive{Op: OpEndLayer, Layer: name, Z: z})
}

func (r *Recorder) Fill(c common.RGB, alpha float64, poly Polygon) {
	r.record(Primitive{Op: OpFill, Color: c, Alpha: alpha, Poly: poly})
}

func (r *Recorder) Stroke(c common.RGB, alpha, width float64, pts []mgl64.Vec2, closed bool) {
	r.record(Primitive{Op: OpStroke, Color: c, Alpha: alpha, Width: width, Points: pts, Closed: closed})
}

func (r *Recorder) Circle(c common.RGB, alpha float64, center mgl64.Vec2, radius float64, filled bool) {
	r.record(Primitive{Op: OpCircle, Color: c, Alpha: alpha, Center: center, Radius: radius, Filled: filled})
}

func (r *Recorder) Text(pos mgl64.Vec2, s string, style TextStyle) {
	r.record(Primitive{Op: OpText, Center: pos, Text: s, Style: style})
}

func (r *Recorder) SetMask(poly Polygon) {
	r.maskActive = true
	r.mask = poly
	r.record(Primitive{Op: OpSetMask, Poly: poly})
}

func (r *Recorder) ClearMask() {
	r.maskActive = false
	r.record(Primitive{Op: OpClearMask})
}

// LayerOps returns the drawing primitives (not layer/mask markers) recorded
// into the named layer.
func (r *Recorder) LayerOps(layer string) []Primitive {
	var out []Primitive
	for _, p := range r.Ops {
		switch p.Op {
		case OpBeginLayer, OpEndLayer, OpSetMask, OpClearMask:
			continue
		}
		if p.Layer == layer {
			out = append(out, p)
		}
	}
	return out
}

// Layers returns the distinct layer names in emission order.
func (r *Recorder) Layers() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range r.Ops {
		if p.Op == OpBeginLayer && !seen[p.Layer] {
			seen[p.Layer] = true
			out = append(out, p.Layer)
		}
	}
	return out
}
