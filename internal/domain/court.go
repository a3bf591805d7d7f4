package domain

import "time"

// Court is a bookable resource from the catalog.
type Court struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
