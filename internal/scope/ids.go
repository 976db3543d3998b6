package scope

// ID identifies a scope in the Tree arena.
type ID uint32

// NoID marks the absence of a scope reference.
const NoID ID = 0

// IsValid reports whether the ID refers to an allocated scope.
func (id ID) IsValid() bool { return id != NoID }
