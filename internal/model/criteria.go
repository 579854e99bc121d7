package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Criterion is one entry of a task's grading checklist template.
type Criterion struct {
	Label    string `json:"label"`
	Expected bool   `json:"expected"`
}

// CriteriaList is the ordered checklist template carried by a Task,
// stored as a JSON column.
type CriteriaList []Criterion

func (c CriteriaList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *CriteriaList) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// CriterionResult records an assessor's met/not-met decision for one
// checklist criterion.
type CriterionResult struct {
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

// CriteriaResults is the completed checklist attached to an Assessment.
type CriteriaResults []CriterionResult

func (c CriteriaResults) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *CriteriaResults) Scan(value interface{}) error {
	return scanJSON(value, c)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON checklist")
	}
}
