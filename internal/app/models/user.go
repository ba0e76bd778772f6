package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	RoleAdmin   RoleType = "ADMIN"
)

// User defines the user model based on the 'users' table. Accounts are
// created and managed by the external admin tooling; this core only reads.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	Name      string    `json:"name" db:"name"`
	Roll      string    `json:"roll" db:"roll"` // roll number (students) or employee id (teachers)
	RoleType  RoleType  `json:"role" db:"role_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
