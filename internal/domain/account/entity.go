package account

import "time"

type Account struct {
	ID           string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, skipping empty parts.
func (a *Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}
