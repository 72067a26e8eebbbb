package rendering

import (
	"log"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	labelFont     *truetype.Font
	labelFontOnce sync.Once

	faceCacheMu sync.Mutex
	faceCache   = map[int]font.Face{}
)

func loadLabelFont() *truetype.Font {
	labelFontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			log.Fatalf("Failed to parse label font: %v", err)
		}
		labelFont = f
	})
	return labelFont
}

// FaceForSize returns a cached truetype face. Sizes are rounded to whole
// points to keep the cache small.
func FaceForSize(size float64) font.Face {
	pt := int(math.Round(size))
	if pt < 4 {
		pt = 4
	}
	faceCacheMu.Lock()
	defer faceCacheMu.Unlock()
	if f, ok := faceCache[pt]; ok {
		return f
	}
	f := truetype.NewFace(loadLabelFont(), &truetype.Options{
		Size:    float64(pt),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[pt] = f
	return f
}

// FaceMetrics answers label width queries from the real label font.
type FaceMetrics struct{}

// MeasureWidth implements FontMetrics.
func (FaceMetrics) MeasureWidth(s string, size float64) float64 {
	adv := font.MeasureString(FaceForSize(size), s)
	return float64(adv) / 64
}
