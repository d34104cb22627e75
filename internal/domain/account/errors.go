package account

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameExists  = errors.New("a user with this username already exists")
	ErrStaffRequired   = errors.New("staff access required")
)
