package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// QuestionAnswer is one response to a catalog question. Evidence and Notes
// substantiate a "yes" answer; either one satisfies the evidence requirement.
type QuestionAnswer struct {
	Answer   AnswerValue `json:"answer"`
	Evidence *string     `json:"evidence"`
	Notes    *string     `json:"notes"`
}

// CategoryAnswers maps question id to answer within one category. Stored as a
// JSON column.
type CategoryAnswers map[string]QuestionAnswer

// Value implements driver.Valuer so GORM persists the map as JSON.
func (a CategoryAnswers) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for the JSON column.
func (a *CategoryAnswers) Scan(value interface{}) error {
	if value == nil {
		*a = CategoryAnswers{}
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*a = CategoryAnswers{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// StringList is a JSON-encoded list of strings (remediation conditions).
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	data, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported JSON column type")
	}
}
