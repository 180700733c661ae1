package model

// Section is a contiguous block of rows sharing a fare class and column set.
type Section struct {
	Class    FareClass
	FirstRow int
	LastRow  int
	Columns  string
}

// Layout is the cabin description an Inventory is generated from.
type Layout []Section

// Columns C/D in First and D in Economy are aisles and never become seats.
var cabinLayout = Layout{
	{Class: First, FirstRow: 1, LastRow: 5, Columns: "ABEF"},
	{Class: Economy, FirstRow: 6, LastRow: 35, Columns: "ABCEFG"},
}

// CabinLayout returns the fixed 200-seat cabin.
func CabinLayout() Layout {
	out := make(Layout, len(cabinLayout))
	copy(out, cabinLayout)
	return out
}

// CabinColumns is the full column span across every section, aisles included.
const CabinColumns = "ABCDEFG"

func (l Layout) seats() []Seat {
	var seats []Seat
	for _, section := range l {
		for row := section.FirstRow; row <= section.LastRow; row++ {
			for i := 0; i < len(section.Columns); i++ {
				seats = append(seats, Seat{
					Row:    row,
					Column: section.Columns[i],
					Class:  section.Class,
				})
			}
		}
	}
	return seats
}

// ClassOf reports which class a position belongs to, or false for aisles and
// rows outside the cabin.
func (l Layout) ClassOf(row int, column byte) (FareClass, bool) {
	for _, section := range l {
		if row < section.FirstRow || row > section.LastRow {
			continue
		}
		for i := 0; i < len(section.Columns); i++ {
			if section.Columns[i] == column {
				return section.Class, true
			}
		}
		return 0, false
	}
	return 0, false
}
