package models

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleResearcher Role = "researcher"
)

func (r Role) Valid() bool { return r == RoleUser || r == RoleResearcher }

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	StudentID    string `json:"student_id,omitempty"`

	// IsApprovedAdmin is derived from Role + StudentID against the allow-list.
	// Recomputed on every session load/login; a cached copy is never authoritative.
	IsApprovedAdmin bool `json:"is_approved_admin"`

	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Name)) < 2 {
		return errors.New("name too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}
