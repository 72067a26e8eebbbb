package rendering

import (
	"github.com/go-gl/mathgl/mgl64"

	"mapengine/common"
	"mapengine/contour"
	"mapengine/features"
)

// hover overlay styling
const (
	hoverColor common.RGB = 0xffe080
	hoverAlpha            = 0.35
)

// RegionLayer renders the vector regions: closed polygons with fill and
// stroke, open polylines as strokes, labels anchored at centroids, and the
// hover highlight overlay.
type RegionLayer struct {
	Features *features.Manager
	Labels   *LabelStyler
}

// renderPoints returns the outline a region draws with, applying its Chaikin
// smoothing iterations.
func renderPoints(rg *features.Region) []mgl64.Vec2 {
	if rg.SmoothIterations <= 0 {
		return rg.Points
	}
	return contour.Chaikin(rg.Points, rg.Closed, rg.SmoothIterations)
}

// Render draws fills and strokes. Order within the batch is irrelevant;
// regions do not occlude each other semantically.
func (l *RegionLayer) Render(cv Canvas) error {
	cv.BeginLayer("regions", ZRegions)
	defer cv.EndLayer()
	for _, rg := range l.Features.Regions() {
		pts := renderPoints(rg)
		if rg.Closed && rg.FillAlpha > 0 {
			cv.Fill(rg.FillColor, rg.FillAlpha, Polygon{Outer: pts})
		}
		if rg.StrokeAlpha > 0 && rg.StrokeWidth > 0 {
			cv.Stroke(rg.StrokeColor, rg.StrokeAlpha, rg.StrokeWidth, pts, rg.Closed)
		}
	}
	return nil
}

// RenderHover draws the highlight overlay of the hovered region, if any.
func (l *RegionLayer) RenderHover(cv Canvas, hovered *features.Region) {
	if hovered == nil {
		return
	}
	cv.BeginLayer("region-hover", ZHoverOverlay)
	defer cv.EndLayer()
	pts := renderPoints(hovered)
	if hovered.Closed {
		cv.Fill(hoverColor, hoverAlpha, Polygon{Outer: pts})
	}
	width := hovered.StrokeWidth + 2
	if width < 3 {
		width = 3
	}
	cv.Stroke(hoverColor, 0.9, width, pts, hovered.Closed)
}

// RenderLabels draws the region name labels at their centroid anchors.
func (l *RegionLayer) RenderLabels(cv Canvas) {
	cv.BeginLayer("region-labels", ZRegionLabels)
	defer cv.EndLayer()
	for _, rg := range l.Features.Regions() {
		if rg.Name == "" {
			continue
		}
		cv.Text(rg.Centroid(), rg.Name, l.Labels.RegionStyle(rg))
	}
}
