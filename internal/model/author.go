package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string    `json:"firstName" gorm:"not null"`
	LastName  string    `json:"lastName" gorm:"not null"`
	Birthdate Date      `json:"birthdate" gorm:"type:date" swaggertype:"string" example:"1965-07-31"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	a.EnsureID()
	return
}

// EnsureID assigns a fresh id when none is set.
func (a *Author) EnsureID() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}
