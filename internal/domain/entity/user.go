package entity

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryUser is an account in the staff/member directory. The attendance
// core only reads it, to resolve the branch-admin audience for failure
// notifications; account management lives elsewhere.
type DirectoryUser struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	BranchID  *uuid.UUID `json:"branch_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
