package models

import (
	"bytes"
	"encoding/json"
)

// Answer values a question accepts.
const (
	AnswerYes       = "yes"
	AnswerNo        = "no"
	AnswerSometimes = "sometimes"
)

// FlexString decodes from either a JSON string or a JSON number.
// Some form clients send age as "34", others as 34.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// PersonalDetails is the personal section of a submission as received from
// the form. Age stays textual until validation parses it. PII is transient:
// it is forwarded to the sheet webhook and discarded.
type PersonalDetails struct {
	Name   string     `json:"name" validate:"notblank"`
	Email  string     `json:"email" validate:"notblank,email_basic"`
	Phone  string     `json:"phone" validate:"notblank,phone_intl"`
	Age    FlexString `json:"age" validate:"notblank,age_range"`
	Gender string     `json:"gender" validate:"notblank,gender_enum"`
}

// NormalizedDetails is PersonalDetails after validation: fields trimmed,
// email and gender lowercased, age parsed to an integer.
type NormalizedDetails struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Responses maps question identifiers (q1..q16) to answers. Clients may send
// extra keys such as q8_frequency; those are carried through to the sheet
// untouched and never inspected here.
type Responses map[string]any

// ScoreResult is derived from a complete, valid answer set.
type ScoreResult struct {
	Score       int    `json:"score"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// SubmissionPayload is the unit forwarded to the sheet webhook. It is only
// constructed after both the personal details and the responses pass
// validation.
type SubmissionPayload struct {
	SubmissionID    string            `json:"submission_id"`
	Timestamp       string            `json:"timestamp"`
	PersonalDetails NormalizedDetails `json:"personalDetails"`
	Responses       Responses         `json:"responses"`
	Result          ScoreResult       `json:"result"`
}
