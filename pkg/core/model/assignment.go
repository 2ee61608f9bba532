package model

// AssignmentKind discriminates the three variants of an engine assignment
type AssignmentKind string

const (
	// KindOnCallPrimary is the night-duty assignment itself
	KindOnCallPrimary AssignmentKind = "oncall_primary"
	// KindOnCallRest is the paired post-duty rest shift on the following day
	KindOnCallRest AssignmentKind = "oncall_rest"
	// KindGeneralShift is a regular shift assignment
	KindGeneralShift AssignmentKind = "general_shift"
)

// Assignment is the engine's primary output unit. All fields are always
// present; LocationID is empty when no work location applies.
type Assignment struct {
	Kind       AssignmentKind
	Date       string
	MemberID   string
	SlotTypeID string
	LocationID string
}

// Key uniquely identifies an assignment for de-duplication at write time
type Key struct {
	MemberID   string
	Date       string
	SlotTypeID string
}

// Key returns the de-duplication key for the assignment
func (a Assignment) Key() Key {
	return Key{MemberID: a.MemberID, Date: a.Date, SlotTypeID: a.SlotTypeID}
}

// IsOnCall reports whether the assignment is a primary on-call duty
func (a Assignment) IsOnCall() bool {
	return a.Kind == KindOnCallPrimary
}
