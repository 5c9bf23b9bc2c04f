package grid

// CellType classifies a grid cell for the current step.
type CellType uint8

const (
	Fluid CellType = iota // at least one particle maps to the cell
	Air                   // open and empty
	Solid                 // openness is zero
)

func (c CellType) String() string {
	switch c {
	case Fluid:
		return "fluid"
	case Air:
		return "air"
	case Solid:
		return "solid"
	}
	return "unknown"
}

// Cells is a per-cell type buffer.
type Cells = Buffer[CellType]

// NewCells allocates a W×H cell type buffer. Cells start as Fluid (the zero value).
func NewCells(w, h int) *Cells {
	return NewBuffer[CellType](w, h)
}
