package entities

import "time"

type MaintenanceRequest struct {
	ID          uint64 `json:"id" db:"id"`
	Subject     string `json:"subject" db:"subject"`
	Description string `json:"description" db:"description"`
	Type        string `json:"type" db:"type"`
	Priority    string `json:"priority" db:"priority"`
	Status      string `json:"status" db:"status"`

	EquipmentID  uint64  `json:"equipmentId" db:"equipment_id"`
	TechnicianID *uint64 `json:"technicianId,omitempty" db:"technician_id"`

	ScheduledDate *time.Time `json:"scheduledDate,omitempty" db:"scheduled_date"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
