package role

import "time"

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
