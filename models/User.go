package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// User is a dashboard account. Staff authenticate with email/password or
// SSO; role gates the admin surface.
type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"password"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"` // Google, Apple
	AvatarURL      string `json:"avatarURL"`
	Role           string `json:"role" gorm:"type:varchar(20);default:staff;index"` // staff, manager, admin, super_admin
}

// Custom JSON marshaling to keep the password hash out of every response
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password string `json:"password,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(u),
	}
	aux.Password = ""
	return json.Marshal(aux)
}
