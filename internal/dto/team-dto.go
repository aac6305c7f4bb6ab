package dto

type CreateTeamDTO struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=General IT Mechanical Electrical Facilities"`
}

type TeamDTO struct {
	ID        uint64         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Users     []ShortUserDTO `json:"users"`
	CreatedAt string         `json:"createdAt"`
}
