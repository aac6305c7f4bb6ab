package dto

type CreateRequestDTO struct {
	Subject       string `json:"subject" validate:"required"`
	Description   string `json:"description"`
	Type          string `json:"type" validate:"required,oneof=Corrective Preventive"`
	Priority      string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	EquipmentID   uint64 `json:"equipmentId" validate:"required"`
	ScheduledDate string `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`

	// Статус клиентом не задаётся: сервер всегда ставит "New".
	Status string `json:"status"`
}

type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type AssignTechnicianDTO struct {
	TechnicianID uint64 `json:"technicianId" validate:"required"`
}

type RequestDTO struct {
	ID            uint64            `json:"id"`
	Subject       string            `json:"subject"`
	Description   string            `json:"description"`
	Type          string            `json:"type"`
	Priority      string            `json:"priority"`
	Status        string            `json:"status"`
	Equipment     ShortEquipmentDTO `json:"equipment"`
	Technician    *ShortUserDTO     `json:"technician,omitempty"`
	ScheduledDate *string           `json:"scheduledDate,omitempty"`
	CreatedAt     string            `json:"createdAt"`
}
