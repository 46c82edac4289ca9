package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/gorm"
)

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	return translateGormError(r.db.WithContext(ctx).Create(author).Error)
}

func (r *GormAuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	authors := make([]model.Author, 0)
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&authors).Error; err != nil {

		return nil, translateGormError(err)
	}
	return authors, nil
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) Update(ctx context.Context, author *model.Author) error {
	result := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]any{
			"first_name": author.FirstName,
			"last_name":  author.LastName,
			"birthdate":  author.Birthdate,
			"updated_at": author.UpdatedAt,
		})
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Author{}, "id = ?", id)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
