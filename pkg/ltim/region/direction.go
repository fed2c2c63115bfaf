package region

// Direction is one of the four cardinal directions on a sheet.
type Direction int

const (
	// Left moves towards column 1.
	Left Direction = iota
	// Right moves towards higher columns.
	Right
	// Above moves towards row 1.
	Above
	// Down moves towards higher rows.
	Down
)

// Delta returns the row and column step for one move in d.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Above:
		return -1, 0
	case Down:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Above:
		return Down
	default:
		return Above
	}
}

// Horizontal reports whether d scans along a row.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Down:
		return "down"
	}
	return "unknown"
}
