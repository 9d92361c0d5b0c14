package member

import (
	"time"

	"kusgan/internal/membership"
)

type Member struct {
	ID        string          `db:"id" json:"id"`
	Nickname  string          `db:"nickname" json:"nickname"`
	FirstName string          `db:"first_name" json:"first_name"`
	LastName  string          `db:"last_name" json:"last_name"`
	Email     *string         `db:"email" json:"email,omitempty"`
	Phone     *string         `db:"phone" json:"phone,omitempty"`
	JoinedOn  membership.Date `db:"joined_on" json:"joined_on" swaggertype:"string" example:"2025-01-03"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Nickname  string  `json:"nickname" validate:"required,max=50"`
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedOn  string  `json:"joined_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type Detail struct {
	Member
	Status membership.Status `json:"status"`
}

type ListResponse struct {
	Members []Member `json:"members"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
