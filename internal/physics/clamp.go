package physics

// ClampSmallMotions zeroes Target, Current and Velocity together once all six components are
// below Epsilon, so a settled cube stops computing sub-visible spring motion.
// Nothing is clamped while dragging or bouncing. Reports whether the state is at rest.
func ClampSmallMotions(s *SpinState, dragging, bouncing bool) bool {
	if dragging || bouncing {
		return false
	}
	if !s.Target.Small(Epsilon) || !s.Current.Small(Epsilon) || !s.Velocity.Small(Epsilon) {
		return false
	}
	*s = SpinState{}
	return true
}
