package biome

import "mapengine/common"

// PatternType selects the decorative fill drawn over a biome's solid color.
type PatternType string

const (
	PatternNone       PatternType = "none"
	PatternDiagonal   PatternType = "diagonal"
	PatternCrosshatch PatternType = "crosshatch"
	PatternVertical   PatternType = "vertical"
	PatternHorizontal PatternType = "horizontal"
	PatternDots       PatternType = "dots"
	PatternCircles    PatternType = "circles"
	PatternWaves      PatternType = "waves"
	PatternHexagons   PatternType = "hexagons"
	PatternSpots      PatternType = "spots"
)

// ValidPatternType reports whether t names a known pattern.
func ValidPatternType(t PatternType) bool {
	switch t {
	case PatternNone, PatternDiagonal, PatternCrosshatch, PatternVertical,
		PatternHorizontal, PatternDots, PatternCircles, PatternWaves,
		PatternHexagons, PatternSpots:
		return true
	}
	return false
}

// PatternConfig tunes a decorative pattern. Spacing and LineWidth are
// multipliers of the grid cell size.
type PatternConfig struct {
	Type PatternType

	// PatternColor overrides the stroke color; when nil the base biome color
	// darkened by DarkenFactor is used instead.
	PatternColor *common.RGB
	DarkenFactor float64

	Spacing   float64 // default 2.0
	LineWidth float64 // default 0.6
	Opacity   float64 // [0,1]
}

// Normalized returns a copy with defaults applied to zero-valued fields.
func (p PatternConfig) Normalized() PatternConfig {
	if p.Spacing <= 0 {
		p.Spacing = 2.0
	}
	if p.LineWidth <= 0 {
		p.LineWidth = 0.6
	}
	if p.Opacity <= 0 || p.Opacity > 1 {
		p.Opacity = 1.0
	}
	return p
}

// StrokeColor resolves the color the pattern draws with, given the biome's
// base color.
func (p PatternConfig) StrokeColor(base common.RGB) common.RGB {
	if p.PatternColor != nil {
		return *p.PatternColor
	}
	return common.Darken(base, p.DarkenFactor)
}
