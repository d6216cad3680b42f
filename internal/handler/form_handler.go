package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"formhub/internal/authz"
	"formhub/internal/errors"
	"formhub/internal/model"
	"formhub/internal/sanitize"
	"formhub/internal/service"
	"formhub/internal/validation"
)

// FormHandler handles form template and submission endpoints.
type FormHandler struct {
	formService service.FormService
}

// NewFormHandler creates a new form handler.
func NewFormHandler(formService service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// FieldInput describes one field of a form template.
type FieldInput struct {
	Label string `json:"label" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

// CreateFormRequest represents a new form template.
type CreateFormRequest struct {
	Name      string       `json:"name" validate:"required,max=255"`
	Fields    []FieldInput `json:"fields" validate:"required,min=1,dive"`
	TimeLimit *int         `json:"timeLimit" validate:"omitempty,min=1"`
}

func (r *CreateFormRequest) sanitize() {
	r.Name = sanitize.String(r.Name)
	sanitizeFields(r.Fields)
}

// NullableInt distinguishes an absent JSON field from an explicit null.
// Present is false when the field never appeared in the body; Value is nil
// when the body carried a literal null.
type NullableInt struct {
	Present bool
	Value   *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableInt) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateFormRequest represents a partial form update; absent fields keep
// their stored values. An explicit null timeLimit clears the stored limit.
type UpdateFormRequest struct {
	Name      *string      `json:"name" validate:"omitempty,max=255"`
	Fields    []FieldInput `json:"fields" validate:"omitempty,min=1,dive"`
	TimeLimit NullableInt  `json:"timeLimit"`
}

func (r *UpdateFormRequest) sanitize() {
	sanitizePtr(r.Name)
	sanitizeFields(r.Fields)
}

// SubmitFormRequest carries one user's answers for a form.
type SubmitFormRequest struct {
	Answers map[string]interface{} `json:"answers" validate:"required,min=1"`
}

func (r *SubmitFormRequest) sanitize() {
	r.Answers = sanitize.Map(r.Answers)
}

func sanitizeFields(fields []FieldInput) {
	for i := range fields {
		fields[i].Label = sanitize.String(fields[i].Label)
		fields[i].Type = sanitize.String(fields[i].Type)
	}
}

func fieldList(fields []FieldInput) model.FieldList {
	if fields == nil {
		return nil
	}
	out := make(model.FieldList, len(fields))
	for i, f := range fields {
		out[i] = model.FieldDescriptor{Label: f.Label, Type: f.Type}
	}
	return out
}

// submissionUser is the trimmed submitter identity in answer listings.
type submissionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// submissionView is one submission in an answer listing.
type submissionView struct {
	ID        uint            `json:"id"`
	User      *submissionUser `json:"user"`
	Answers   model.AnswerSet `json:"answers"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateForm godoc
// @Summary Create a form template
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFormRequest true "Form definition"
// @Success 201 {object} model.Form
// @Failure 422 {object} errors.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c echo.Context) error {
	var req CreateFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data provided"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data provided", err)
	}

	form, err := h.formService.Create(c.Request().Context(), req.Name, fieldList(req.Fields), req.TimeLimit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, form)
}

// ListForms godoc
// @Summary List form templates
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Form
// @Router /forms [get]
func (h *FormHandler) ListForms(c echo.Context) error {
	forms, err := h.formService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, forms)
}

// GetForm godoc
// @Summary Get a form template by id
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {object} model.Form
// @Failure 404 {object} errors.ErrorResponse
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Form not found"})
	}

	form, err := h.formService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, form)
}

// UpdateForm godoc
// @Summary Update a form template
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param request body UpdateFormRequest true "Fields to change"
// @Success 200 {object} model.Form
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateForm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Form not found"})
	}

	var req UpdateFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data provided"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data provided", err)
	}
	if req.TimeLimit.Present && req.TimeLimit.Value != nil && *req.TimeLimit.Value < 1 {
		verrs := validation.Errors{}
		verrs.Add("timeLimit", "The timeLimit must be at least 1.")
		return validationFailed(c, "Invalid data provided", verrs)
	}

	clearTimeLimit := req.TimeLimit.Present && req.TimeLimit.Value == nil
	form, err := h.formService.Update(c.Request().Context(), id, req.Name, fieldList(req.Fields), req.TimeLimit.Value, clearTimeLimit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, form)
}

// DeleteForm godoc
// @Summary Delete a form template
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Form not found"})
	}

	if err := h.formService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Form deleted successfully"})
}

// SubmitForm godoc
// @Summary Submit answers for a form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param request body SubmitFormRequest true "Answers keyed by field label"
// @Success 201 {object} model.FormSubmission
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /forms/{id}/submit [post]
func (h *FormHandler) SubmitForm(c echo.Context) error {
	user := authz.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Message: "Unauthenticated"})
	}

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Form not found"})
	}

	var req SubmitFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errors.ErrorResponse{Message: "Invalid data provided"})
	}

	req.sanitize()
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, "Invalid data provided", err)
	}

	submission, err := h.formService.Submit(c.Request().Context(), id, user.ID, model.AnswerSet(req.Answers))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, submission)
}

// FormAnswers godoc
// @Summary List a form's submissions
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /forms/{id}/answers [get]
func (h *FormHandler) FormAnswers(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Form not found"})
	}

	form, submissions, err := h.formService.Answers(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]submissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := submissionView{
			ID:        sub.ID,
			Answers:   sub.Answers,
			CreatedAt: sub.CreatedAt,
		}
		if sub.User != nil {
			view.User = &submissionUser{ID: sub.User.ID, Name: sub.User.Name, Email: sub.User.Email}
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"form":        map[string]interface{}{"id": form.ID, "name": form.Name},
		"submissions": views,
	})
}

// DeleteAnswer godoc
// @Summary Delete a single submission
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /answers/{id} [delete]
func (h *FormHandler) DeleteAnswer(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, errors.ErrorResponse{Message: "Answer not found"})
	}

	if err := h.formService.DeleteAnswer(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Answer deleted successfully"})
}
