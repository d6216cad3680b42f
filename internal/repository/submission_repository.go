package repository

import (
	"context"

	"gorm.io/gorm"

	"formhub/internal/model"
)

// SubmissionRepository defines form submission persistence operations.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.FormSubmission) error
	Delete(ctx context.Context, submission *model.FormSubmission) error
	FindByID(ctx context.Context, id uint) (*model.FormSubmission, error)
	ListByForm(ctx context.Context, formID uint) ([]model.FormSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository builds a GORM-backed repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.FormSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Delete(ctx context.Context, submission *model.FormSubmission) error {
	return r.db.WithContext(ctx).Delete(submission).Error
}

func (r *submissionRepository) FindByID(ctx context.Context, id uint) (*model.FormSubmission, error) {
	var submission model.FormSubmission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByForm returns a form's submissions with the submitting user preloaded.
func (r *submissionRepository) ListByForm(ctx context.Context, formID uint) ([]model.FormSubmission, error) {
	var submissions []model.FormSubmission
	if err := r.db.WithContext(ctx).Preload("User").Where("form_id = ?", formID).Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
