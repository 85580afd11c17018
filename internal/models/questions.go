// internal/models/questions.go
package models

// QuestionType is the normalized underwriting question presentation type.
type QuestionType string

const (
	QuestionTypeYesNo      QuestionType = "YES_NO"
	QuestionTypeTextSingle QuestionType = "TEXT_SINGLE"
	QuestionTypeTextMulti  QuestionType = "TEXT_MULTI"
	QuestionTypeCheckboxes QuestionType = "CHECKBOXES"
	QuestionTypeSelect     QuestionType = "SELECT"
)

// AnsweredQuestion is one normalized underwriting question with the
// applicant's raw answer, as produced by the portal.
type AnsweredQuestion struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Answer   string       `json:"answer"`
	Required bool         `json:"required"`
	Hidden   bool         `json:"hidden"`
}

// IsAffirmative reports whether a Yes/No answer is a yes. The portal stores
// booleans inconsistently across legacy question sets.
func (q AnsweredQuestion) IsAffirmative() bool {
	switch q.Answer {
	case "yes", "Yes", "YES", "true", "True", "1", "Y", "y":
		return true
	}
	return false
}
