package domain

import "time"

// DeliveryGroup is an organizational grouping that owns a set of projects.
type DeliveryGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lead      string    `json:"lead,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeliveryPartner is an external partner delivering work on projects.
type DeliveryPartner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PortfolioTheme tags projects with a cross-cutting portfolio theme.
type PortfolioTheme struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
