package ring

// Direction is a unit step along a Ring. Or in plain words: forward or
// backward.
type Direction int

const (
	Forward  = Direction(+1)
	Backward = Direction(-1)
)

// normal maps every Direction onto Forward or Backward. Anything that
// is not Backward steps forward.
func (d Direction) normal() Direction {
	if d == Backward {
		return Backward
	}
	return Forward
}

// String returns the lowercase name of d.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "none"
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "forward", "fwd", "next":
		return Forward, true
	case "backward", "back", "prev":
		return Backward, true
	}
	return 0, false
}
