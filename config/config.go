package config

// Engine configuration constants and default values

// Debug flags
const (
	// DEBUG_MODE enables debug visualization (biome border pass) and logging
	DEBUG_MODE = false
)

// Default scene dimensions, used when no dimension provider is attached
const (
	DefaultSceneWidth  = 1920
	DefaultSceneHeight = 1080
)

// Grid defaults
const (
	DefaultGridRows     = 80
	DefaultGridCols     = 100
	DefaultGridCellSize = 16.0
)

// Height contour rendering
const (
	// ContourLevels is the number of threshold levels spanning the observed
	// height range
	ContourLevels = 20

	// HachureSpacing is the along-contour distance between downslope marks,
	// in pixels
	HachureSpacing = 25.0

	// HachureLength is the length of one downslope mark, in pixels
	HachureLength = 4.0

	// HachureProbeCells is how far the slope probe samples to each side of a
	// contour segment, in cells
	HachureProbeCells = 2.0

	// MinHachureSegmentLength: segments shorter than this get no hachures
	MinHachureSegmentLength = 1.0
)

// Biome rendering
const (
	// BiomeSmoothIterations is the Chaikin iteration count for biome outlines
	BiomeSmoothIterations = 2

	// BiomeSpeckleMinCells: biome mask components smaller than this are
	// absorbed before contouring
	BiomeSpeckleMinCells = 2
)

// Export limits
const (
	// MaxTextureSize is the largest offscreen raster dimension the export
	// path will allocate; larger requests are downscaled to fit
	MaxTextureSize = 4096
)

// Label rendering
const (
	// LabelBaseFontSize is the reference size labels are measured at before
	// fitting
	LabelBaseFontSize = 28.0

	// LabelOutlineFactor scales the black outline width from the font size
	LabelOutlineFactor = 0.22

	// LabelMinMargin is the smallest horizontal margin kept between a region
	// label and the region's bounding box
	LabelMinMargin = 20.0
)
