package rendering

import (
	"math"

	"mapengine/config"
	"mapengine/features"
)

// FontMetrics is the single font query the engine needs: the advance width
// of a string at a font size. The ebiten canvas answers it from a real
// truetype face; tests use the approximate fallback.
type FontMetrics interface {
	MeasureWidth(s string, size float64) float64
}

// ApproxMetrics estimates width as a fixed fraction of the font size per
// rune. Good enough for layout tests and headless tooling.
type ApproxMetrics struct{}

// MeasureWidth implements FontMetrics.
func (ApproxMetrics) MeasureWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}

// LabelStyler computes label text styles: white fill, black outline scaled
// from the font size, and region label sizes fitted to the region width.
type LabelStyler struct {
	Metrics FontMetrics
}

// NewLabelStyler builds a styler, defaulting to approximate metrics.
func NewLabelStyler(metrics FontMetrics) *LabelStyler {
	if metrics == nil {
		metrics = ApproxMetrics{}
	}
	return &LabelStyler{Metrics: metrics}
}

func baseStyle(size, rotation float64) TextStyle {
	return TextStyle{
		Size:         size,
		Color:        0xffffff,
		Alpha:        1.0,
		OutlineColor: 0x000000,
		OutlineWidth: config.LabelOutlineFactor * size,
		Rotation:     rotation,
	}
}

// RiverStyle returns the style of a river label rotated along its folded
// tangent angle.
func (ls *LabelStyler) RiverStyle(angle float64) TextStyle {
	return baseStyle(config.LabelBaseFontSize*0.75, angle)
}

// RegionStyle fits a region's label into its width budget: the bounding-box
// width minus a margin on each side. The font only ever scales down from the
// base size, never up.
func (ls *LabelStyler) RegionStyle(rg *features.Region) TextStyle {
	width := rg.Bounds().Width()
	margin := math.Max(config.LabelMinMargin, 0.06*width)
	margin = math.Max(margin, rg.StrokeWidth/2+10)
	budget := width - 2*margin

	size := config.LabelBaseFontSize
	if budget > 0 {
		measured := ls.Metrics.MeasureWidth(rg.Name, size)
		if measured > budget {
			size *= budget / measured
		}
	}
	return baseStyle(size, 0)
}
