package rendering

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"mapengine/config"
)

// ErrTextureSizeExceeded is returned when an export raster cannot fit the
// maximum texture size even after downscaling.
var ErrTextureSizeExceeded = errors.New("requested raster exceeds maximum texture size")

// Scene holds the composited scene images on the ebiten side and applies the
// compositor's cross-fade when drawing to the screen.
type Scene struct {
	Width  int
	Height int

	current  *ebiten.Image
	previous *ebiten.Image
}

// NewScene allocates a scene of the given pixel size.
func NewScene(width, height int) *Scene {
	return &Scene{Width: width, Height: height}
}

// Rebuild renders the compositor into a fresh scene image and arms the
// cross-fade from the previous one. The prior fade's outgoing image is
// destroyed by the swap.
func (s *Scene) Rebuild(comp *Compositor) {
	next := ebiten.NewImage(s.Width, s.Height)
	comp.RenderTo(NewEbitenCanvas(next, 1))

	if s.previous != nil {
		s.previous.Deallocate()
	}
	s.previous = s.current
	s.current = next
	comp.StartFade()
}

// Update advances the fade clock; call once per frame with the frame delta in
// seconds.
func (s *Scene) Update(comp *Compositor, dt float64) {
	if comp.Fade.Update(dt) && s.previous != nil {
		s.previous.Deallocate()
		s.previous = nil
	}
}

// Draw composites the scene onto the screen, cross-fading the previous scene
// out while the current fades in.
func (s *Scene) Draw(comp *Compositor, screen *ebiten.Image) {
	in, out := comp.Fade.Alphas()
	if s.previous != nil && out > 0 {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(out))
		screen.DrawImage(s.previous, op)
	}
	if s.current != nil {
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(in))
		screen.DrawImage(s.current, op)
	}
}

// ExportImage renders the scene offscreen at the requested size and scale
// with hover overlays hidden. Rasters larger than the maximum texture size
// are downscaled to fit; a degenerate request fails with the discovered
// maximum in the error.
func ExportImage(comp *Compositor, width, height int, scale float64) (*ebiten.Image, error) {
	if width <= 0 || height <= 0 || scale <= 0 {
		return nil, fmt.Errorf("export %dx%d @%g: %w (max %d)",
			width, height, scale, ErrTextureSizeExceeded, config.MaxTextureSize)
	}
	pw := float64(width) * scale
	ph := float64(height) * scale
	if pw > config.MaxTextureSize {
		factor := config.MaxTextureSize / pw
		pw *= factor
		ph *= factor
		scale *= factor
	}
	if ph > config.MaxTextureSize {
		factor := config.MaxTextureSize / ph
		pw *= factor
		ph *= factor
		scale *= factor
	}
	if pw < 1 || ph < 1 {
		return nil, fmt.Errorf("export degenerates to %gx%g: %w (max %d)",
			pw, ph, ErrTextureSizeExceeded, config.MaxTextureSize)
	}

	img := ebiten.NewImage(int(pw), int(ph))
	comp.RenderExportTo(NewEbitenCanvas(img, scale))
	return img, nil
}
