// internal/quoting/questions/resolver_test.go
package questions

import (
	"testing"

	"carrier-quoting/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = Tokens{Yes: "Y", No: "N"}

func yesNo(id, answer string, required, hidden bool) models.AnsweredQuestion {
	return models.AnsweredQuestion{
		ID:       id,
		Type:     models.QuestionTypeYesNo,
		Answer:   answer,
		Required: required,
		Hidden:   hidden,
	}
}

func TestResolve_UnmappedQuestionIsSkipped(t *testing.T) {
	q := yesNo("q.prior-losses", "yes", true, false)

	_, ok := Resolve(q, map[string]string{"q.other": "C-1"}, testTokens)

	assert.False(t, ok)
}

func TestResolve_OptionalNegativeYesNoIsSkipped(t *testing.T) {
	codes := map[string]string{"q.pool": "POOL01"}

	_, ok := Resolve(yesNo("q.pool", "no", false, false), codes, testTokens)
	assert.False(t, ok, "optional negative answers are not sent to carriers")
}

func TestResolve_RequiredNegativeYesNoIsNeverSkipped(t *testing.T) {
	codes := map[string]string{"q.pool": "POOL01"}

	res, ok := Resolve(yesNo("q.pool", "no", true, false), codes, testTokens)

	require.True(t, ok)
	assert.Equal(t, "POOL01", res.Code)
	assert.Equal(t, "N", res.Value)
	assert.Equal(t, EncodingBoolean, res.Kind)
}

func TestResolve_HiddenNegativeYesNoIsSent(t *testing.T) {
	codes := map[string]string{"q.subcontract": "SUB02"}

	res, ok := Resolve(yesNo("q.subcontract", "no", false, true), codes, testTokens)

	require.True(t, ok)
	assert.Equal(t, "N", res.Value)
}

func TestResolve_AffirmativeUsesCarrierToken(t *testing.T) {
	codes := map[string]string{"q.alarm": "ALRM"}

	res, ok := Resolve(yesNo("q.alarm", "true", false, false), codes, Tokens{Yes: "YES", No: "NO"})

	require.True(t, ok)
	assert.Equal(t, "YES", res.Value)
}

func TestResolve_NumericAnswer(t *testing.T) {
	q := models.AnsweredQuestion{
		ID:       "q.employee-count",
		Type:     models.QuestionTypeTextSingle,
		Answer:   "12",
		Required: true,
	}

	res, ok := Resolve(q, map[string]string{"q.employee-count": "EMP"}, testTokens)

	require.True(t, ok)
	assert.Equal(t, EncodingNumeric, res.Kind)
	assert.Equal(t, "12", res.Value)
}

func TestResolve_FreeTextAnswer(t *testing.T) {
	q := models.AnsweredQuestion{
		ID:       "q.operations",
		Type:     models.QuestionTypeTextMulti,
		Answer:   "retail bakery with delivery",
		Required: true,
	}

	res, ok := Resolve(q, map[string]string{"q.operations": "OPS"}, testTokens)

	require.True(t, ok)
	assert.Equal(t, EncodingText, res.Kind)
	assert.Equal(t, "retail bakery with delivery", res.Value)
}

func TestResolve_EmptyEncodedValueIsSkipped(t *testing.T) {
	q := models.AnsweredQuestion{
		ID:       "q.operations",
		Type:     models.QuestionTypeTextSingle,
		Answer:   "   ",
		Required: true,
	}

	_, ok := Resolve(q, map[string]string{"q.operations": "OPS"}, testTokens)
	assert.False(t, ok)
}

func TestResolveAll_PreservesOrderAndDropsSkips(t *testing.T) {
	qs := []models.AnsweredQuestion{
		yesNo("q.a", "yes", true, false),
		yesNo("q.unmapped", "yes", true, false),
		yesNo("q.b", "no", false, false), // optional negative, skipped
		{ID: "q.c", Type: models.QuestionTypeTextSingle, Answer: "5", Required: true},
	}
	codes := map[string]string{"q.a": "A1", "q.b": "B1", "q.c": "C1"}

	out := ResolveAll(qs, codes, testTokens)

	require.Len(t, out, 2)
	assert.Equal(t, "A1", out[0].Code)
	assert.Equal(t, "C1", out[1].Code)
}
