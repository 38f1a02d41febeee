package users

import "time"

// User is a registered account. PasswordHash never leaves the server; the
// handlers serialize only the public fields.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Phone        *string
	CreatedAt    time.Time
}

type CreateParams struct {
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Phone        *string
}
