package entities

import "time"

type Equipment struct {
	ID           uint64  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	SerialNumber string  `json:"serialNumber" db:"serial_number"`
	Location     string  `json:"location" db:"location"`
	Department   string  `json:"department" db:"department"`
	Status       string  `json:"status" db:"status"`
	TeamID       *uint64 `json:"teamId,omitempty" db:"team_id"`

	PurchaseDate time.Time `json:"purchaseDate" db:"purchase_date"`
	WarrantyEnd  time.Time `json:"warrantyEnd" db:"warranty_end"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
