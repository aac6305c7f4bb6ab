package dto

type CreateEquipmentDTO struct {
	Name         string  `json:"name" validate:"required"`
	SerialNumber string  `json:"serialNumber" validate:"required"`
	Location     string  `json:"location"`
	Department   string  `json:"department"`
	PurchaseDate string  `json:"purchaseDate" validate:"required,datetime=2006-01-02"`
	WarrantyEnd  string  `json:"warrantyEnd" validate:"required,datetime=2006-01-02"`
	TeamID       *uint64 `json:"teamId"`
}

type UpdateEquipmentStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type EquipmentDTO struct {
	ID           uint64            `json:"id"`
	Name         string            `json:"name"`
	SerialNumber string            `json:"serialNumber"`
	Location     string            `json:"location"`
	Department   string            `json:"department"`
	Status       string            `json:"status"`
	PurchaseDate string            `json:"purchaseDate"`
	WarrantyEnd  string            `json:"warrantyEnd"`
	Team         *ShortTeamDTO     `json:"team,omitempty"`
	Requests     []ShortRequestDTO `json:"requests"`
	CreatedAt    string            `json:"createdAt"`
}

type PredictionDTO struct {
	Health              int    `json:"health"`
	FailureDays         int    `json:"failureDays"`
	Recommendation      string `json:"recommendation"`
	NextMaintenanceDate string `json:"nextMaintenanceDate"`
}
