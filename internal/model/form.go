package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// FieldDescriptor describes one input field of a form template.
type FieldDescriptor struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// FieldList is an ordered sequence of field descriptors stored as a JSON column.
type FieldList []FieldDescriptor

// Value implements driver.Valuer.
func (f FieldList) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *FieldList) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, f)
}

// Form is a reusable template of input field descriptors with an optional
// time limit in minutes.
type Form struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Fields    FieldList `json:"fields" gorm:"type:json;not null"`
	TimeLimit *int      `json:"timeLimit" gorm:"column:time_limit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported type for JSON column")
	}
}
