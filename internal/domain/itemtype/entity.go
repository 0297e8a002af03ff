package itemtype

import "time"

// ItemType is a wage-component category. Its subject flags are the single
// source of truth for which statutory deductions a wage item contributes to.
type ItemType struct {
	ID   string
	Code string // short identifier, e.g. "01"
	Name string

	SubjectToAhv bool
	SubjectToAlv bool
	SubjectToNbu bool
	SubjectToBvg bool
	SubjectToQst bool

	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
