package models

// ApprovalStatus is the moderation state shared by shelter profiles and
// stores. Transitions are unrestricted: an admin may flip between APPROVED
// and REJECTED repeatedly; there is no terminal state.
type ApprovalStatus string

const (
	// StatusPending indicates the entity is awaiting admin review.
	StatusPending ApprovalStatus = "PENDING"
	// StatusApproved indicates the entity passed admin review.
	StatusApproved ApprovalStatus = "APPROVED"
	// StatusRejected indicates the entity was declined by an admin.
	StatusRejected ApprovalStatus = "REJECTED"
)

// Valid reports whether s is one of the three known approval states.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
