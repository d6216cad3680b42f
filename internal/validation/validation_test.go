package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type credentialsInput struct {
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	OldPassword    string  `json:"oldPassword" validate:"required_with=NewPassword"`
	NewPassword    *string `json:"newPassword" validate:"omitempty,min=8"`
	RetypePassword *string `json:"retypePassword" validate:"omitempty,eqfield=NewPassword"`
}

func strptr(s string) *string { return &s }

func TestValidateAggregatesAcrossFields(t *testing.T) {
	v := New()

	err := v.Validate(&registerInput{Name: "", Email: "not-an-email", Password: "short"})
	assert.Error(t, err)

	verrs, ok := err.(Errors)
	assert.True(t, ok)
	assert.Len(t, verrs, 3)
	assert.Equal(t, []string{"The name field is required."}, verrs["name"])
	assert.Equal(t, []string{"The email must be a valid email address."}, verrs["email"])
	assert.Equal(t, []string{"The password must be at least 8 characters."}, verrs["password"])
}

func TestValidatePasses(t *testing.T) {
	v := New()
	err := v.Validate(&registerInput{Name: "Ann", Email: "a@b.com", Password: "longenough1"})
	assert.NoError(t, err)
}

func TestValidateOptionalFieldsSkippedWhenAbsent(t *testing.T) {
	v := New()

	// nothing present: no rule fires
	assert.NoError(t, v.Validate(&credentialsInput{}))

	// present fields are validated
	err := v.Validate(&credentialsInput{Email: strptr("nope")})
	assert.Error(t, err)
	verrs := err.(Errors)
	assert.Contains(t, verrs, "email")
	assert.NotContains(t, verrs, "newPassword")
}

func TestValidateCrossFieldEquality(t *testing.T) {
	v := New()

	err := v.Validate(&credentialsInput{
		OldPassword:    "current-pass",
		NewPassword:    strptr("newpassword1"),
		RetypePassword: strptr("different1"),
	})
	assert.Error(t, err)
	verrs := err.(Errors)
	assert.Equal(t, []string{"The retypePassword and newPassword must match."}, verrs["retypePassword"])

	err = v.Validate(&credentialsInput{
		OldPassword:    "current-pass",
		NewPassword:    strptr("newpassword1"),
		RetypePassword: strptr("newpassword1"),
	})
	assert.NoError(t, err)
}

func TestValidateRequiredWith(t *testing.T) {
	v := New()

	err := v.Validate(&credentialsInput{NewPassword: strptr("newpassword1"), RetypePassword: strptr("newpassword1")})
	assert.Error(t, err)
	verrs := err.(Errors)
	assert.Equal(t, []string{"The oldPassword field is required."}, verrs["oldPassword"])
}

func TestErrorsAdd(t *testing.T) {
	e := Errors{}
	e.Add("email", "The email has already been taken.")
	e.Add("email", "second")
	assert.Equal(t, []string{"The email has already been taken.", "second"}, e["email"])
	assert.Contains(t, e.Error(), "email")
}
