// Файл: internal/entities/user_entity.go
package entities

import "time"

type User struct {
	ID    uint64 `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`

	Password string `json:"-" db:"password"`

	Role   string  `json:"role" db:"role"`
	TeamID *uint64 `json:"teamId,omitempty" db:"team_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
