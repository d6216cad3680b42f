package repository

import (
	"context"

	"gorm.io/gorm"

	"formhub/internal/model"
)

// FormRepository defines form persistence operations.
type FormRepository interface {
	Create(ctx context.Context, form *model.Form) error
	Update(ctx context.Context, form *model.Form) error
	Delete(ctx context.Context, form *model.Form) error
	FindByID(ctx context.Context, id uint) (*model.Form, error)
	List(ctx context.Context) ([]model.Form, error)
}

type formRepository struct {
	db *gorm.DB
}

// NewFormRepository builds a GORM-backed repository.
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(ctx context.Context, form *model.Form) error {
	return r.db.WithContext(ctx).Create(form).Error
}

func (r *formRepository) Update(ctx context.Context, form *model.Form) error {
	return r.db.WithContext(ctx).Save(form).Error
}

func (r *formRepository) Delete(ctx context.Context, form *model.Form) error {
	return r.db.WithContext(ctx).Delete(form).Error
}

func (r *formRepository) FindByID(ctx context.Context, id uint) (*model.Form, error) {
	var form model.Form
	if err := r.db.WithContext(ctx).First(&form, id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) List(ctx context.Context) ([]model.Form, error) {
	var forms []model.Form
	if err := r.db.WithContext(ctx).Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}
