package dto

type ShortUserDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortTeamDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ShortEquipmentDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status"`
}

type ShortRequestDTO struct {
	ID      uint64 `json:"id"`
	Subject string `json:"subject"`
	Status  string `json:"status"`
}
