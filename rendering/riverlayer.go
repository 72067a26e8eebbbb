package rendering

import (
	"mapengine/common"
	"mapengine/features"
)

// river stroke color and opacity
const (
	riverColor common.RGB = 0x3a6ea5
	riverAlpha            = 0.95
)

// RiverLayer renders every vector river by circle stamping and places their
// labels at arc-length midpoints.
type RiverLayer struct {
	Features     *features.Manager
	RotateLabels bool
	Labels       *LabelStyler
}

// Render draws the river bodies.
func (l *RiverLayer) Render(cv Canvas) error {
	cv.BeginLayer("rivers", ZRivers)
	defer cv.EndLayer()
	for _, r := range l.Features.Rivers() {
		for _, stamp := range r.Stamps() {
			cv.Circle(riverColor, riverAlpha, stamp.Center, stamp.Radius, true)
		}
	}
	return nil
}

// RenderLabels draws the river name labels in their own top layer.
func (l *RiverLayer) RenderLabels(cv Canvas) {
	cv.BeginLayer("river-labels", ZRiverLabels)
	defer cv.EndLayer()
	for _, r := range l.Features.Rivers() {
		if r.Name == "" {
			continue
		}
		pos, angle := r.LabelAnchor(l.RotateLabels)
		style := l.Labels.RiverStyle(angle)
		cv.Text(pos, r.Name, style)
	}
}
