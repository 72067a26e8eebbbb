package rendering

import "github.com/go-gl/mathgl/mgl64"

func pt(x, y float64) mgl64.Vec2 { return mgl64.Vec2{x, y} }

func mgl64Square(x, y, size float64) []mgl64.Vec2 {
	return []mgl64.Vec2{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
}
