package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AnswerSet maps field labels to submitted answer values. It is an opaque
// validated document stored as a JSON column; answer values keep whatever
// sanitized shape the submitter sent.
type AnswerSet map[string]interface{}

// Value implements driver.Valuer.
func (a AnswerSet) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AnswerSet) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, a)
}

// FormSubmission is one user's answer set for one form.
type FormSubmission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	FormID    uint      `json:"form_id" gorm:"not null;index"`
	Answers   AnswerSet `json:"answers" gorm:"type:json;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Form *Form `json:"-" gorm:"foreignKey:FormID"`
}
