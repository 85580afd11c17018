// internal/models/claims.go
package models

import "time"

type Claim struct {
	EventDate      *time.Time `json:"eventDate,omitempty"`
	AmountPaid     Currency   `json:"amountPaid"`
	AmountReserved Currency   `json:"amountReserved"`
	Open           bool       `json:"open"`
	LostTime       bool       `json:"lostTime"`
	PolicyType     PolicyType `json:"policyType"`
	Description    string     `json:"description,omitempty"`
}

// ClaimYearBucket aggregates claims that occurred within one policy year
// before an effective date. Year 1 is the twelve months immediately
// preceding the effective date.
type ClaimYearBucket struct {
	Year          int      `json:"year"`
	ClaimCount    int      `json:"claimCount"`
	LostTimeCount int      `json:"lostTimeCount"`
	TotalPaid     Currency `json:"totalPaid"`
	TotalReserved Currency `json:"totalReserved"`
}
