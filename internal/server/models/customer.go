package models

import "time"

// Customer is one account record, keyed by email. Emails are compared
// case-sensitively, exactly as stored.
type Customer struct {
	Email          string
	PasswordDigest string
	Profile        map[string]string
	CreatedAt      time.Time
}

// Public returns a copy safe to hand back to callers: the password digest
// is stripped from the representation.
func (c *Customer) Public() *Customer {
	return &Customer{
		Email:     c.Email,
		Profile:   c.Profile,
		CreatedAt: c.CreatedAt,
	}
}
