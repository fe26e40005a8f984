package model

import "time"

// Principal is whoever passed the shared password gate. There are no roles.
type Principal struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
