// internal/quoting/outcome/outcome.go

// Package outcome defines the canonical quote result vocabulary every
// carrier adapter reduces to, and the terminal constructors that are the
// only way to build one.
package outcome

import (
	"encoding/json"
	"time"

	"carrier-quoting/internal/models"
)

// Status is the normalized quote decision.
type Status string

const (
	StatusQuoted            Status = "quoted"
	StatusReferred          Status = "referred"
	StatusReferredWithPrice Status = "referred_with_price"
	StatusDeclined          Status = "declined"
	StatusAutodeclined      Status = "autodeclined"
	StatusError             Status = "error"
)

// QuoteLetter is the carrier-issued quote document, when one is returned.
type QuoteLetter struct {
	Content  []byte
	MimeType string
}

// QuoteOutcome is the sole output of one adapter invocation. All fields
// are unexported; outcomes are immutable after construction and only the
// Builder's terminal methods create them.
type QuoteOutcome struct {
	carrierID  string
	policyType models.PolicyType
	status     Status
	premium    models.Currency
	hasPremium bool
	limits     models.LimitTuple
	hasLimits  bool
	reference  string
	letter     *QuoteLetter
	bindable   bool
	reasons    []string
	createdAt  time.Time
}

func (o QuoteOutcome) CarrierID() string             { return o.carrierID }
func (o QuoteOutcome) PolicyType() models.PolicyType { return o.policyType }
func (o QuoteOutcome) Status() Status                { return o.status }
func (o QuoteOutcome) Reference() string             { return o.reference }
func (o QuoteOutcome) Bindable() bool                { return o.bindable }
func (o QuoteOutcome) CreatedAt() time.Time          { return o.createdAt }

// Premium returns the carrier's premium when one was produced.
func (o QuoteOutcome) Premium() (models.Currency, bool) {
	return o.premium, o.hasPremium
}

// Limits returns the limit tuple actually bound, when one was produced.
func (o QuoteOutcome) Limits() (models.LimitTuple, bool) {
	return o.limits, o.hasLimits
}

// Letter returns a copy of the quote letter, when one was returned.
func (o QuoteOutcome) Letter() (QuoteLetter, bool) {
	if o.letter == nil {
		return QuoteLetter{}, false
	}
	content := make([]byte, len(o.letter.Content))
	copy(content, o.letter.Content)
	return QuoteLetter{Content: content, MimeType: o.letter.MimeType}, true
}

// Reasons returns a copy of the ordered human-readable reason list.
func (o QuoteOutcome) Reasons() []string {
	out := make([]string, len(o.reasons))
	copy(out, o.reasons)
	return out
}

// IsBusinessDecision reports whether the outcome is a normal underwriting
// result rather than a platform failure. Errors are surfaced to agencies
// as "insurer temporarily unavailable", never as a decline.
func (o QuoteOutcome) IsBusinessDecision() bool {
	return o.status != StatusError
}

// outcomeView is the serialized shape consumed by the worker output and
// the outcome indexer.
type outcomeView struct {
	CarrierID  string            `json:"carrierId"`
	PolicyType models.PolicyType `json:"policyType"`
	Status     Status            `json:"status"`
	Premium    *models.Currency  `json:"premium,omitempty"`
	Limits     *models.LimitTuple `json:"limits,omitempty"`
	Reference  string            `json:"reference,omitempty"`
	Bindable   bool              `json:"bindable"`
	Reasons    []string          `json:"reasons,omitempty"`
	HasLetter  bool              `json:"hasLetter"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func (o QuoteOutcome) MarshalJSON() ([]byte, error) {
	v := outcomeView{
		CarrierID:  o.carrierID,
		PolicyType: o.policyType,
		Status:     o.status,
		Reference:  o.reference,
		Bindable:   o.bindable,
		Reasons:    o.reasons,
		HasLetter:  o.letter != nil,
		CreatedAt:  o.createdAt,
	}
	if o.hasPremium {
		p := o.premium
		v.Premium = &p
	}
	if o.hasLimits {
		l := o.limits
		v.Limits = &l
	}
	return json.Marshal(v)
}
