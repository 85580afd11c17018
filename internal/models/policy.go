// internal/models/policy.go
package models

import (
	"fmt"
	"time"
)

// PolicyType identifies which line of business a policy record covers.
type PolicyType string

const (
	PolicyTypeBOP PolicyType = "BOP" // business owner's policy
	PolicyTypeGL  PolicyType = "GL"  // general liability
	PolicyTypeWC  PolicyType = "WC"  // workers' compensation
)

// Currency is a monetary amount in integer cents (0.01 USD).
type Currency int64

// Dollars returns the amount as a float for display only.
func (c Currency) Dollars() float64 {
	return float64(c) / 100
}

func (c Currency) String() string {
	return fmt.Sprintf("%.2f", c.Dollars())
}

// LimitTuple is an ordered set of whole-dollar coverage limits. For GL/BOP
// the slots are per-occurrence, aggregate, products-aggregate; for WC
// employer liability they are per-accident, per-policy, per-employee.
// A zero slot on a requested tuple means "don't care".
type LimitTuple [3]int

func (t LimitTuple) IsZero() bool {
	return t[0] == 0 && t[1] == 0 && t[2] == 0
}

func (t LimitTuple) String() string {
	return fmt.Sprintf("%d/%d/%d", t[0], t[1], t[2])
}

type Policy struct {
	Type            PolicyType `json:"type"`
	EffectiveDate   time.Time  `json:"effectiveDate"`
	ExpirationDate  time.Time  `json:"expirationDate"`
	RequestedLimits LimitTuple `json:"requestedLimits"`
	Deductible      Currency   `json:"deductible"`

	// Lapse flags from the prior-coverage section of the application.
	HadLapse      bool `json:"hadLapse"`
	HadOpenClaims bool `json:"hadOpenClaims"`
}
