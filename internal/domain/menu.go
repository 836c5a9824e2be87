package domain

import "time"

type MenuItem struct {
	ID              string
	Name            string
	Description     string
	Category        string
	Price           float64
	PrepTimeMinutes int
	Available       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
