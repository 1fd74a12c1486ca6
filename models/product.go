package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Image       string    `json:"image"`
	Origin      string    `json:"origin"`
	Weight      string    `json:"weight"`
	Ingredients string    `json:"ingredients"`
	Meaning     string    `json:"meaning"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
