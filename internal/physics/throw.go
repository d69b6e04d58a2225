package physics

import "spincube/internal/config"

// DragOffset converts a pointer delta in pixels to a spin offset. Axes are swapped:
// vertical movement rotates about X and horizontal movement rotates about Y.
func DragOffset(delta Vec2, cfg *config.Config) Vec2 {
	return Vec2{X: delta.Y * cfg.DragSensitivity, Y: delta.X * cfg.DragSensitivity}
}

// ThrowVelocity is the spin velocity a pointer delta imparts if the drag is released right after it.
func ThrowVelocity(delta Vec2, cfg *config.Config) Vec2 {
	return DragOffset(delta, cfg).Scale(cfg.ThrowVelocityFactor)
}
