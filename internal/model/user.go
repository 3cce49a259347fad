package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The password hash never leaves the server: handlers build
// separate response types and this struct carries no json tags.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique, case-sensitive login name.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
