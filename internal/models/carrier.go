// internal/models/carrier.go
package models

// AuthScheme selects how a carrier authenticates API calls.
type AuthScheme string

const (
	AuthSchemeBasic  AuthScheme = "basic"
	AuthSchemeBearer AuthScheme = "bearer"
	AuthSchemeAPIKey AuthScheme = "api_key"
)

// RawLimitTuple is a supported-limit row exactly as configured for a
// carrier. Carriers publish these inconsistently ("1,000,000", "$2M"),
// so normalization happens at match time, not load time.
type RawLimitTuple [3]string

// CarrierProfile is the static, per-carrier, per-policy-type configuration
// an adapter runs against. It is read-only during a quoting run.
type CarrierProfile struct {
	CarrierID  string     `json:"carrierId"`
	PolicyType PolicyType `json:"policyType"`

	// SupportedLimits carries no ordering guarantee; matching considers
	// every row.
	SupportedLimits []RawLimitTuple `json:"supportedLimits"`

	// QuestionCodes maps normalized question ids to this carrier's codes.
	// An absent entry means the question does not apply to this carrier.
	QuestionCodes map[string]string `json:"questionCodes"`

	// EntityTypes the carrier has appetite for; empty means all.
	EntityTypes []string `json:"entityTypes,omitempty"`

	Host        string      `json:"host"`
	Credentials Credentials `json:"credentials"`
	Sandbox     bool        `json:"sandbox"`

	// ClaimsHorizonYears is how many policy years of loss history the
	// carrier wants, 1..5 across the carriers seen so far.
	ClaimsHorizonYears int `json:"claimsHorizonYears"`
}

type Credentials struct {
	Scheme   AuthScheme `json:"scheme"`
	Username string     `json:"username,omitempty"`
	Password string     `json:"password,omitempty"`
	APIKey   string     `json:"apiKey,omitempty"`
	ClientID string     `json:"clientId,omitempty"`
	Secret   string     `json:"secret,omitempty"`
}

// SupportsEntityType reports whether the carrier writes the given legal
// entity type.
func (p *CarrierProfile) SupportsEntityType(entityType string) bool {
	if len(p.EntityTypes) == 0 {
		return true
	}
	for _, et := range p.EntityTypes {
		if et == entityType {
			return true
		}
	}
	return false
}
