// internal/quoting/carriers/meridian/models.go
package meridian

// Meridian rates workers' comp in two steps: open a rating session, then
// price it. Monetary amounts on their wire are integer cents.

type sessionRequest struct {
	ExternalRef string `json:"externalRef"`
	Test        bool   `json:"test"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type priceRequest struct {
	Employer   employerInfo   `json:"employer"`
	Exposures  []exposureInfo `json:"exposures"`
	Liability  liabilityInfo  `json:"employersLiability"`
	Questions  []questionInfo `json:"questions"`
	LossYears  []lossYearInfo `json:"lossHistory"`
	PriorLapse bool           `json:"priorCoverageLapse"`
}

type employerInfo struct {
	LegalName  string `json:"legalName"`
	FEIN       string `json:"fein"`
	EntityType string `json:"entityType"`
	State      string `json:"state"`
}

type exposureInfo struct {
	ClassCode string `json:"classCode"`
	Payroll   int64  `json:"payrollCents"`
	State     string `json:"state"`
}

type liabilityInfo struct {
	EachAccident int `json:"eachAccident"`
	PolicyLimit  int `json:"policyLimit"`
	EachEmployee int `json:"eachEmployee"`
}

type questionInfo struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type lossYearInfo struct {
	Year       int   `json:"year"`
	ClaimCount int   `json:"claimCount"`
	LostTime   int   `json:"lostTimeClaims"`
	PaidCents  int64 `json:"paidCents"`
	OpenCents  int64 `json:"reservedCents"`
}

type priceResponse struct {
	Decision        string   `json:"decision"`
	QuoteRef        string   `json:"quoteRef"`
	TotalPremium    *int64   `json:"totalPremiumCents,omitempty"`
	ReferralReasons []string `json:"referralReasons,omitempty"`
}
