package domain

import "time"

type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email,omitempty" db:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// VerifiedProfile is what the identity provider integration hands over after a
// successful OAuth exchange.
type VerifiedProfile struct {
	Provider  string
	Subject   string
	Name      string
	Email     *string
	AvatarURL *string
}
