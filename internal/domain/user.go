package domain

import "time"

// User is a row of the warehouse users table.
type User struct {
	ID        int32
	Name      string
	Email     string
	CreatedAt time.Time
}
