package domain

import "time"

// Role is the privilege level attached to a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin reports whether r carries administrative privilege.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile is the per-identity record. Exactly one profile exists per
// identity-provider user. Role defaults to "user" and is mutable only by a
// super_admin.
type Profile struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"user_id" bson:"user_id"`
	Email        string    `json:"email" bson:"email"`
	FullName     string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Role         Role      `json:"role" bson:"role"`
	FacebookLink string    `json:"facebook_link,omitempty" bson:"facebook_link,omitempty"`
	TelegramLink string    `json:"telegram_link,omitempty" bson:"telegram_link,omitempty"`
	WhatsappLink string    `json:"whatsapp_link,omitempty" bson:"whatsapp_link,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
