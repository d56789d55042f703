package model

import (
	"time"
)

const (
	RoleEmployer  = "employer"
	RoleJobSeeker = "job_seeker"
)

// ValidRole reports whether the given role is one this system knows about.
func ValidRole(role string) bool {
	return role == RoleEmployer || role == RoleJobSeeker
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	FullName       *string   `json:"full_name"`
	CompanyName    *string   `json:"company_name"`
	Phone          *string   `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

func (u *User) IsJobSeeker() bool {
	return u.Role == RoleJobSeeker
}
