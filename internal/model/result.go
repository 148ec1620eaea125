package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ChecklistItem is one pass/fail criterion of an interview assessment.
type ChecklistItem struct {
	Criterion string `json:"criterion"`
	Passed    bool   `json:"passed"`
}

// Feedback is the narrative assessment returned by interview grading.
type Feedback struct {
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Tips              []string `json:"tips"`
	OverallAssessment string   `json:"overall_assessment"`
	Recommendation    string   `json:"recommendation,omitempty"`
}

// DetailedReview is the per-question portion of an interview assessment.
// SubScore is on a 0-10 scale.
type DetailedReview struct {
	QuestionID   string  `json:"question_id"`
	AnswerReview string  `json:"answer_review"`
	SubScore     float64 `json:"score"`
	Suggestions  string  `json:"suggestions"`
}

// JSON-in-text-column types. GORM stores these as serialized text so the
// result shapes survive round trips without extra tables.

type StringList []string

type Checklist []ChecklistItem

type ReviewList []DetailedReview

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(src any) error          { return jsonScan(src, l) }

func (c Checklist) Value() (driver.Value, error) { return jsonValue(c) }
func (c *Checklist) Scan(src any) error          { return jsonScan(src, c) }

func (r ReviewList) Value() (driver.Value, error) { return jsonValue(r) }
func (r *ReviewList) Scan(src any) error          { return jsonScan(src, r) }

func (f *Feedback) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return jsonValue(f)
}
func (f *Feedback) Scan(src any) error { return jsonScan(src, f) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst any) error {
	if src == nil {
		return nil
	}
	switch s := src.(type) {
	case []byte:
		return json.Unmarshal(s, dst)
	case string:
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
