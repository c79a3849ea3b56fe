package structure

// Opacity levels for the "peel back floors" inspection mode.
const (
	VisibleOpacity = 1.0
	HiddenOpacity  = 0.15
)

// OpacityFor is the visibility rule for one element under a height threshold
// in cm (nil means fully opaque). Pure function over (element, threshold,
// plan) so it can be tested without a scene graph.
//
// Tag priority order, which must be preserved exactly:
//  1. nil threshold: visible.
//  2. Doors compare against their floor's wall-top height, so a door
//     disappears in lockstep with the wall that contains it rather than at
//     its own (lower) coordinate.
//  3. Roof elements compare against the floor-2 wall top regardless of their
//     own Y: the roof only disappears once the view has opened up through
//     the second floor.
//  4. Everything else compares its own world-space Y against the threshold.
func OpacityFor(el Element, threshold *int, plan Plan) float64 {
	if threshold == nil {
		return VisibleOpacity
	}
	t := float64(*threshold)
	switch el.Role.Kind {
	case RoleDoor:
		floorTop := plan.Floor1Top()
		if el.Role.Floor == 2 {
			floorTop = plan.Floor2Top()
		}
		if t < floorTop {
			return HiddenOpacity
		}
		return VisibleOpacity
	case RoleRoof:
		if t < plan.Floor2Top() {
			return HiddenOpacity
		}
		return VisibleOpacity
	default:
		if el.Position.Y > t {
			return HiddenOpacity
		}
		return VisibleOpacity
	}
}

// ApplyVisibility recomputes every element's opacity from scratch for the
// given threshold. Called on discrete user input, not per frame.
func (s *Structure) ApplyVisibility(threshold *int) {
	for i := range s.Elements {
		s.Elements[i].Opacity = OpacityFor(s.Elements[i], threshold, s.Plan)
	}
}

// ThresholdForKey maps the numeric-key control scheme to a threshold:
// keys '1'..'9' select digit x 300 cm, '0' resets to nil (fully opaque).
// Other keys return (nil, false).
func ThresholdForKey(key rune) (*int, bool) {
	switch {
	case key == '0':
		return nil, true
	case key >= '1' && key <= '9':
		t := int(key-'0') * 300
		return &t, true
	default:
		return nil, false
	}
}
