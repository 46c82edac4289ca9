package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/model"
	"gorm.io/gorm"
)

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return translateGormError(r.db.WithContext(ctx).Create(book).Error)
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&books).Error; err != nil {

		return nil, translateGormError(err)
	}
	return books, nil
}

func (r *GormBookRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Book, error) {
	books := make([]model.Book, 0)
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC").
		Find(&books).Error; err != nil {

		return nil, translateGormError(err)
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &book, nil
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":        book.Title,
			"author_id":    book.AuthorID,
			"iban":         book.IBAN,
			"published_at": book.PublishedAt,
			"updated_at":   book.UpdatedAt,
		})
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "author_id = ?", authorID)
	if result.Error != nil {
		return 0, translateGormError(result.Error)
	}
	return result.RowsAffected, nil
}
