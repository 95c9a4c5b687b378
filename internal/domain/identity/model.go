package identity

import (
	"time"
)

// User maps to the users table.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Role           string    `db:"role" json:"role"`
	ProfileImage   []byte    `db:"profile_image" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ProfileUpdate carries the optional fields of a partial profile update.
// A nil field is left untouched; only submitted, non-empty values apply.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Image    []byte
}
