package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "user"

type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
