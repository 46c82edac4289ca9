package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book references its author by id only. There is no foreign key; deleting an
// author removes its books in a separate step.
type Book struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	AuthorID    uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`
	IBAN        string    `json:"iban" gorm:"column:iban;not null;uniqueIndex"`
	PublishedAt Date      `json:"publishedAt" gorm:"type:date" swaggertype:"string" example:"2007-07-21"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	b.EnsureID()
	return
}

func (b *Book) EnsureID() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
}
