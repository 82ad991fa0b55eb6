package model

// CellState is the two-valued state of a cell. It is derived from alive-set
// membership, never stored per cell.
type CellState int

const (
	Dead CellState = iota
	Alive
)

func (s CellState) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}
