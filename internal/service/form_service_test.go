package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "formhub/internal/errors"
	"formhub/internal/model"
)

// MockFormRepository is a mock implementation of FormRepository.
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, form *model.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Update(ctx context.Context, form *model.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, form *model.Form) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockFormRepository) FindByID(ctx context.Context, id uint) (*model.Form, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Form), args.Error(1)
}

func (m *MockFormRepository) List(ctx context.Context) ([]model.Form, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Form), args.Error(1)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository.
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, submission *model.FormSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, submission *model.FormSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id uint) (*model.FormSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FormSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) ListByForm(ctx context.Context, formID uint) ([]model.FormSubmission, error) {
	args := m.Called(ctx, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FormSubmission), args.Error(1)
}

func contactFormFixture() *model.Form {
	timeLimit := 30
	return &model.Form{
		ID:   1,
		Name: "Contact Form",
		Fields: model.FieldList{
			{Label: "Name", Type: "text"},
			{Label: "Message", Type: "textarea"},
		},
		TimeLimit: &timeLimit,
	}
}

func TestFormService_Create(t *testing.T) {
	mockFormRepo := new(MockFormRepository)
	mockFormRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewFormService(mockFormRepo, new(MockSubmissionRepository))
	fields := model.FieldList{{Label: "Name", Type: "text"}}
	form, err := service.Create(context.Background(), "Survey", fields, nil)

	assert.NoError(t, err)
	assert.NotNil(t, form)
	assert.Equal(t, "Survey", form.Name)
	assert.Equal(t, fields, form.Fields)
	assert.Nil(t, form.TimeLimit)
	mockFormRepo.AssertExpectations(t)
}

func TestFormService_Update(t *testing.T) {
	newName := "Feedback Form"
	newTimeLimit := 60

	tests := []struct {
		name           string
		changeName     *string
		fields         model.FieldList
		timeLimit      *int
		clearTimeLimit bool
		check          func(*testing.T, *model.Form)
	}{
		{
			name:       "name-only update keeps fields and time limit",
			changeName: &newName,
			check: func(t *testing.T, form *model.Form) {
				assert.Equal(t, newName, form.Name)
				assert.Len(t, form.Fields, 2)
				assert.NotNil(t, form.TimeLimit)
				assert.Equal(t, 30, *form.TimeLimit)
			},
		},
		{
			name:      "time limit update keeps name and fields",
			timeLimit: &newTimeLimit,
			check: func(t *testing.T, form *model.Form) {
				assert.Equal(t, "Contact Form", form.Name)
				assert.Len(t, form.Fields, 2)
				assert.Equal(t, 60, *form.TimeLimit)
			},
		},
		{
			name:   "field replacement keeps the rest",
			fields: model.FieldList{{Label: "Rating", Type: "number"}},
			check: func(t *testing.T, form *model.Form) {
				assert.Equal(t, "Contact Form", form.Name)
				assert.Len(t, form.Fields, 1)
				assert.Equal(t, "Rating", form.Fields[0].Label)
			},
		},
		{
			name:           "clearing removes the time limit and keeps the rest",
			clearTimeLimit: true,
			check: func(t *testing.T, form *model.Form) {
				assert.Equal(t, "Contact Form", form.Name)
				assert.Len(t, form.Fields, 2)
				assert.Nil(t, form.TimeLimit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFormRepo := new(MockFormRepository)
			mockFormRepo.On("FindByID", mock.Anything, uint(1)).Return(contactFormFixture(), nil)
			mockFormRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

			service := NewFormService(mockFormRepo, new(MockSubmissionRepository))
			form, err := service.Update(context.Background(), 1, tt.changeName, tt.fields, tt.timeLimit, tt.clearTimeLimit)

			assert.NoError(t, err)
			tt.check(t, form)
			mockFormRepo.AssertExpectations(t)
		})
	}

	t.Run("missing form", func(t *testing.T) {
		mockFormRepo := new(MockFormRepository)
		mockFormRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewFormService(mockFormRepo, new(MockSubmissionRepository))
		form, err := service.Update(context.Background(), 99, &newName, nil, nil, false)

		assert.Equal(t, apperrors.ErrFormNotFound, err)
		assert.Nil(t, form)
		mockFormRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestFormService_Submit(t *testing.T) {
	t.Run("records the submission for an existing form", func(t *testing.T) {
		mockFormRepo := new(MockFormRepository)
		mockSubmissionRepo := new(MockSubmissionRepository)

		mockFormRepo.On("FindByID", mock.Anything, uint(1)).Return(contactFormFixture(), nil)
		mockSubmissionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		service := NewFormService(mockFormRepo, mockSubmissionRepo)
		answers := model.AnswerSet{"Name": "John Doe", "Message": "Hello"}
		submission, err := service.Submit(context.Background(), 1, 5, answers)

		assert.NoError(t, err)
		assert.NotNil(t, submission)
		assert.Equal(t, uint(1), submission.FormID)
		assert.Equal(t, uint(5), submission.UserID)
		assert.Equal(t, answers, submission.Answers)
		mockFormRepo.AssertExpectations(t)
		mockSubmissionRepo.AssertExpectations(t)
	})

	t.Run("rejects a submission for a missing form", func(t *testing.T) {
		mockFormRepo := new(MockFormRepository)
		mockSubmissionRepo := new(MockSubmissionRepository)
		mockFormRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewFormService(mockFormRepo, mockSubmissionRepo)
		submission, err := service.Submit(context.Background(), 99, 5, model.AnswerSet{"Name": "John"})

		assert.Equal(t, apperrors.ErrFormNotFound, err)
		assert.Nil(t, submission)
		mockSubmissionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFormService_Answers(t *testing.T) {
	mockFormRepo := new(MockFormRepository)
	mockSubmissionRepo := new(MockSubmissionRepository)

	mockFormRepo.On("FindByID", mock.Anything, uint(1)).Return(contactFormFixture(), nil)
	mockSubmissionRepo.On("ListByForm", mock.Anything, uint(1)).Return([]model.FormSubmission{
		{ID: 10, FormID: 1, UserID: 5, Answers: model.AnswerSet{"Name": "John"}},
	}, nil)

	service := NewFormService(mockFormRepo, mockSubmissionRepo)
	form, submissions, err := service.Answers(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "Contact Form", form.Name)
	assert.Len(t, submissions, 1)
	assert.Equal(t, uint(10), submissions[0].ID)
	mockFormRepo.AssertExpectations(t)
	mockSubmissionRepo.AssertExpectations(t)
}

func TestFormService_DeleteAnswer(t *testing.T) {
	t.Run("deletes an existing submission", func(t *testing.T) {
		mockSubmissionRepo := new(MockSubmissionRepository)
		submission := &model.FormSubmission{ID: 10, FormID: 1, UserID: 5}
		mockSubmissionRepo.On("FindByID", mock.Anything, uint(10)).Return(submission, nil)
		mockSubmissionRepo.On("Delete", mock.Anything, submission).Return(nil)

		service := NewFormService(new(MockFormRepository), mockSubmissionRepo)
		err := service.DeleteAnswer(context.Background(), 10)

		assert.NoError(t, err)
		mockSubmissionRepo.AssertExpectations(t)
	})

	t.Run("missing submission is not found", func(t *testing.T) {
		mockSubmissionRepo := new(MockSubmissionRepository)
		mockSubmissionRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewFormService(new(MockFormRepository), mockSubmissionRepo)
		err := service.DeleteAnswer(context.Background(), 99)

		assert.Equal(t, apperrors.ErrSubmissionNotFound, err)
		mockSubmissionRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
