package models

import "gorm.io/gorm"

// User represents a registered customer or administrator.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Admin    bool   `json:"admin"`

	gorm.Model `json:"-"`
}

// PublicProfile returns the fields safe to hand back to clients.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"admin": u.Admin,
	}
}
