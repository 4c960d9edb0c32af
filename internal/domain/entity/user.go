package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table
type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID               int       `gorm:"not null;index" json:"role_id"`
	Username             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password             string    `gorm:"type:text;not null" json:"-"`
	FirstName            string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName             string    `gorm:"type:varchar(100);not null" json:"last_name"`
	IDNumber             string    `gorm:"type:varchar(8);uniqueIndex;not null" json:"id_number"`
	SocialSecurityNumber string    `gorm:"type:char(11)" json:"social_security_number,omitempty"`
	Specialty            string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}
