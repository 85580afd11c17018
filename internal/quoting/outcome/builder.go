// internal/quoting/outcome/builder.go
package outcome

import (
	"fmt"
	"time"

	"carrier-quoting/internal/models"
)

// Builder accumulates reasons and carrier signals while an adapter works
// through request construction and response classification, then produces
// exactly one terminal QuoteOutcome. It is adapter-local: one builder per
// invocation, never shared. Calling a second terminal method panics.
type Builder struct {
	carrierID  string
	policyType models.PolicyType
	reasons    []string
	bindable   bool
	finalized  bool
}

func NewBuilder(carrierID string, policyType models.PolicyType) *Builder {
	return &Builder{carrierID: carrierID, policyType: policyType}
}

// AddReason appends one human-readable reason line.
func (b *Builder) AddReason(format string, args ...interface{}) {
	b.reasons = append(b.reasons, fmt.Sprintf(format, args...))
}

// MarkBindable records that the carrier explicitly signalled a bindable
// decision. It only affects a subsequent Quoted outcome.
func (b *Builder) MarkBindable() {
	b.bindable = true
}

// Quoted produces a successful quote. letter may be nil.
func (b *Builder) Quoted(reference string, boundLimits models.LimitTuple, premium models.Currency, letter *QuoteLetter) QuoteOutcome {
	o := b.terminal(StatusQuoted)
	o.reference = reference
	o.limits = boundLimits
	o.hasLimits = true
	o.premium = premium
	o.hasPremium = true
	o.letter = cloneLetter(letter)
	o.bindable = b.bindable
	return o
}

// Referred produces an underwriting referral. premium may be nil; when
// present the status becomes referred_with_price.
func (b *Builder) Referred(reference string, boundLimits models.LimitTuple, premium *models.Currency, letter *QuoteLetter) QuoteOutcome {
	status := StatusReferred
	if premium != nil {
		status = StatusReferredWithPrice
	}
	o := b.terminal(status)
	o.reference = reference
	o.limits = boundLimits
	o.hasLimits = true
	if premium != nil {
		o.premium = *premium
		o.hasPremium = true
	}
	o.letter = cloneLetter(letter)
	return o
}

// Declined produces a carrier-side rejection of the risk.
func (b *Builder) Declined(reasons ...string) QuoteOutcome {
	b.reasons = append(b.reasons, reasons...)
	return b.terminal(StatusDeclined)
}

// Autodeclined produces a platform-side determination, made before any
// network call, that the carrier cannot quote this risk.
func (b *Builder) Autodeclined(reasons ...string) QuoteOutcome {
	b.reasons = append(b.reasons, reasons...)
	return b.terminal(StatusAutodeclined)
}

// Error produces a transport or platform failure outcome.
func (b *Builder) Error(message string) QuoteOutcome {
	b.reasons = append(b.reasons, message)
	return b.terminal(StatusError)
}

func (b *Builder) terminal(status Status) QuoteOutcome {
	if b.finalized {
		panic("outcome: builder already produced a terminal outcome")
	}
	b.finalized = true

	reasons := make([]string, len(b.reasons))
	copy(reasons, b.reasons)

	return QuoteOutcome{
		carrierID:  b.carrierID,
		policyType: b.policyType,
		status:     status,
		reasons:    reasons,
		createdAt:  time.Now().UTC(),
	}
}

func cloneLetter(l *QuoteLetter) *QuoteLetter {
	if l == nil {
		return nil
	}
	content := make([]byte, len(l.Content))
	copy(content, l.Content)
	return &QuoteLetter{Content: content, MimeType: l.MimeType}
}
