package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email                       string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	Name                        string    `gorm:"type:text;not null" json:"name"`
	PasswordHash                string    `gorm:"type:text;not null" json:"-"`
	Role                        string    `gorm:"type:text;not null;default:'user'" json:"role"`
	EncryptedGoogleAccessToken  string    `gorm:"type:text" json:"-"`
	EncryptedGoogleRefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (u *User) HasGoogleCalendar() bool {
	return u.EncryptedGoogleAccessToken != ""
}
