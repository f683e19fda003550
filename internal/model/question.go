package model

import (
	"encoding/json"
	"fmt"
)

// OptionLabels are the five answer option labels in presentation order.
var OptionLabels = [5]string{"A", "B", "C", "D", "E"}

// ValidOptionLabel reports whether label is one of A-E.
func ValidOptionLabel(label string) bool {
	for _, l := range OptionLabels {
		if l == label {
			return true
		}
	}
	return false
}

// OptionSet holds the five option texts in label order (index 0 is A).
// It marshals to and from the labeled wire object {"A": ..., ..., "E": ...}.
type OptionSet [5]string

func (o OptionSet) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(OptionLabels))
	for i, label := range OptionLabels {
		m[label] = o[i]
	}
	return json.Marshal(m)
}

func (o *OptionSet) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for i, label := range OptionLabels {
		text, ok := m[label]
		if !ok {
			return fmt.Errorf("missing option %q", label)
		}
		o[i] = text
	}
	return nil
}

// Question represents a single exam question. The whole bank is replaced
// atomically on upload; individual questions are never edited.
type Question struct {
	ID            int64     `json:"id"`
	Text          string    `json:"question"`
	Options       OptionSet `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
}

// StudentQuestion is the redacted view served to students. It carries no
// correct answer field at all, so redaction cannot regress serializer-side.
type StudentQuestion struct {
	ID      int64     `json:"id"`
	Text    string    `json:"question"`
	Options OptionSet `json:"options"`
}

// StudentView strips the correct answer from a question.
func (q Question) StudentView() StudentQuestion {
	return StudentQuestion{ID: q.ID, Text: q.Text, Options: q.Options}
}

// QuestionUpload is one question inside an upload payload.
type QuestionUpload struct {
	Text    string    `json:"question" binding:"required,min=1,max=2000"`
	Options OptionSet `json:"options" binding:"required"`
	Correct string    `json:"correct" binding:"required,oneof=A B C D E"`
}

// UploadQuestionsRequest is the payload for bulk replacing the question bank.
type UploadQuestionsRequest struct {
	Questions []QuestionUpload `json:"questions" binding:"required,min=1,dive"`
}
