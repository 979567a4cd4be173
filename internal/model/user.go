package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the privilege level of a user.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

var roleRank = map[Role]int{
	RoleGuest:  0,
	RoleMember: 1,
	RoleAdmin:  2,
}

// Rank orders roles from least to most privileged. Unknown roles rank as guest.
func (r Role) Rank() int {
	return roleRank[r]
}

// AtLeast reports whether r grants everything required grants.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// User represents a registered customer or administrator.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PhotoURL  string    `json:"photoUrl,omitempty" gorm:"size:1024"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'member';index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets the UUID and the default role before inserting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	return nil
}
