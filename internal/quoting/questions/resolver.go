// internal/quoting/questions/resolver.go

// Package questions resolves normalized underwriting questions to
// carrier-specific question codes and answer encodings.
package questions

import (
	"regexp"
	"strings"

	"carrier-quoting/internal/models"
)

var numericAnswer = regexp.MustCompile(`^\d+$`)

// EncodingKind tells the adapter which wire shape the encoded answer takes.
type EncodingKind string

const (
	EncodingBoolean EncodingKind = "boolean"
	EncodingNumeric EncodingKind = "numeric"
	EncodingText    EncodingKind = "text"
)

// Tokens are the carrier's yes/no answer tokens ("Y"/"N", "true"/"false",
// "YES"/"NO" depending on the carrier's API).
type Tokens struct {
	Yes string
	No  string
}

// Resolution is one question mapped onto a carrier's vocabulary.
type Resolution struct {
	QuestionID string
	Code       string
	Value      string
	Kind       EncodingKind
}

// Resolve maps one answered question to the carrier's code and encoding.
// ok is false when the question must be skipped:
//
//  1. the carrier has no code for this question id (not applicable);
//  2. the question is optional, boolean, not hidden, and answered
//     negatively; carriers are not sent explicit "No" answers to
//     non-mandatory questions;
//  3. encoding produced an empty value.
//
// Resolve carries no carrier business logic. Carriers that need computed
// facts injected as question codes (years in business and the like) layer
// those as explicit overrides in their adapter, after this generic pass.
func Resolve(q models.AnsweredQuestion, codes map[string]string, tokens Tokens) (Resolution, bool) {
	code, mapped := codes[q.ID]
	if !mapped || code == "" {
		return Resolution{}, false
	}

	if !q.Required && q.Type == models.QuestionTypeYesNo && !q.Hidden && !q.IsAffirmative() {
		return Resolution{}, false
	}

	res := Resolution{QuestionID: q.ID, Code: code}
	switch {
	case q.Type == models.QuestionTypeYesNo:
		res.Kind = EncodingBoolean
		if q.IsAffirmative() {
			res.Value = tokens.Yes
		} else {
			res.Value = tokens.No
		}
	case numericAnswer.MatchString(strings.TrimSpace(q.Answer)):
		res.Kind = EncodingNumeric
		res.Value = strings.TrimSpace(q.Answer)
	default:
		res.Kind = EncodingText
		res.Value = strings.TrimSpace(q.Answer)
	}

	if res.Value == "" {
		return Resolution{}, false
	}
	return res, true
}

// ResolveAll runs Resolve over every question, preserving input order.
// Skipped questions are simply absent from the result.
func ResolveAll(qs []models.AnsweredQuestion, codes map[string]string, tokens Tokens) []Resolution {
	out := make([]Resolution, 0, len(qs))
	for _, q := range qs {
		if res, ok := Resolve(q, codes, tokens); ok {
			out = append(out, res)
		}
	}
	return out
}
