package catalog

// PlacementKind says where a new entry goes.
type PlacementKind int

const (
	// AppendToShelf adds the entry to the last container of the genre.
	AppendToShelf PlacementKind = iota

	// NewShelf creates a new shelf after the last one.
	NewShelf

	// FirstShelf creates the first shelf of an empty section.
	FirstShelf
)

func (k PlacementKind) String() string {
	switch k {
	case AppendToShelf:
		return "append"
	case NewShelf:
		return "new-shelf"
	case FirstShelf:
		return "first-shelf"
	default:
		return "unknown"
	}
}

// Placement is the allocator's decision.
type Placement struct {
	Kind PlacementKind

	// Container is the index of the target container for AppendToShelf, or
	// the container the new shelf follows for NewShelf. It is -1 for
	// FirstShelf.
	Container int

	// Count is the number of entries currently in the last container.
	Count int
}

// Allocate decides where the next entry goes given the per-container entry
// counts of a genre in document order.
//
// Only the last container is considered; earlier shelves with free space are
// never back-filled, so appends always land at the end of the section order.
func Allocate(counts []int, capacity int) Placement {
	if len(counts) == 0 {
		return Placement{Kind: FirstShelf, Container: -1}
	}

	last := len(counts) - 1
	p := Placement{Container: last, Count: counts[last]}
	if counts[last] >= capacity {
		p.Kind = NewShelf
	} else {
		p.Kind = AppendToShelf
	}
	return p
}
