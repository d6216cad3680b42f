package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "formhub/internal/errors"
	"formhub/internal/model"
	"formhub/internal/repository"
)

// FormService exposes form template and submission operations.
type FormService interface {
	Create(ctx context.Context, name string, fields model.FieldList, timeLimit *int) (*model.Form, error)
	List(ctx context.Context) ([]model.Form, error)
	Get(ctx context.Context, id uint) (*model.Form, error)
	Update(ctx context.Context, id uint, name *string, fields model.FieldList, timeLimit *int, clearTimeLimit bool) (*model.Form, error)
	Delete(ctx context.Context, id uint) error
	Submit(ctx context.Context, formID, userID uint, answers model.AnswerSet) (*model.FormSubmission, error)
	Answers(ctx context.Context, formID uint) (*model.Form, []model.FormSubmission, error)
	DeleteAnswer(ctx context.Context, submissionID uint) error
}

type formService struct {
	formRepo       repository.FormRepository
	submissionRepo repository.SubmissionRepository
}

// NewFormService creates a new form service.
func NewFormService(formRepo repository.FormRepository, submissionRepo repository.SubmissionRepository) FormService {
	return &formService{
		formRepo:       formRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *formService) Create(ctx context.Context, name string, fields model.FieldList, timeLimit *int) (*model.Form, error) {
	form := &model.Form{
		Name:      name,
		Fields:    fields,
		TimeLimit: timeLimit,
	}
	if err := s.formRepo.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	return form, nil
}

func (s *formService) List(ctx context.Context) ([]model.Form, error) {
	return s.formRepo.List(ctx)
}

func (s *formService) Get(ctx context.Context, id uint) (*model.Form, error) {
	form, err := s.formRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFormNotFound
		}
		return nil, fmt.Errorf("find form: %w", err)
	}
	return form, nil
}

// Update applies a partial update: nil name, nil fields and nil timeLimit
// keep the stored values untouched. clearTimeLimit removes the time limit
// entirely and wins over timeLimit.
func (s *formService) Update(ctx context.Context, id uint, name *string, fields model.FieldList, timeLimit *int, clearTimeLimit bool) (*model.Form, error) {
	form, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		form.Name = *name
	}
	if fields != nil {
		form.Fields = fields
	}
	switch {
	case clearTimeLimit:
		form.TimeLimit = nil
	case timeLimit != nil:
		form.TimeLimit = timeLimit
	}

	if err := s.formRepo.Update(ctx, form); err != nil {
		return nil, fmt.Errorf("update form: %w", err)
	}
	return form, nil
}

func (s *formService) Delete(ctx context.Context, id uint) error {
	form, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.formRepo.Delete(ctx, form); err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	return nil
}

// Submit records one user's answer set for a form.
func (s *formService) Submit(ctx context.Context, formID, userID uint, answers model.AnswerSet) (*model.FormSubmission, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}

	submission := &model.FormSubmission{
		UserID:  userID,
		FormID:  form.ID,
		Answers: answers,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return submission, nil
}

// Answers returns the form and all its submissions with submitters preloaded.
func (s *formService) Answers(ctx context.Context, formID uint) (*model.Form, []model.FormSubmission, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, nil, err
	}

	submissions, err := s.submissionRepo.ListByForm(ctx, formID)
	if err != nil {
		return nil, nil, fmt.Errorf("list submissions: %w", err)
	}
	return form, submissions, nil
}

func (s *formService) DeleteAnswer(ctx context.Context, submissionID uint) error {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubmissionNotFound
		}
		return fmt.Errorf("find submission: %w", err)
	}
	if err := s.submissionRepo.Delete(ctx, submission); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}
