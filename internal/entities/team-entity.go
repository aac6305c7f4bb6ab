package entities

import "time"

type MaintenanceTeam struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
