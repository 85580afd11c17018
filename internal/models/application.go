// internal/models/application.go
package models

import "time"

// Application is the normalized submission produced by the platform's
// validation layer. Adapters treat it as read-only.
type Application struct {
	ID          string             `json:"id"`
	AgencyID    string             `json:"agencyId"`
	Business    BusinessInfo       `json:"business"`
	Locations   []Location         `json:"locations"`
	Contacts    []Contact          `json:"contacts"`
	Policies    []Policy           `json:"policies"`
	Claims      []Claim            `json:"claims"`
	Questions   []AnsweredQuestion `json:"questions"`
	SubmittedAt time.Time          `json:"submittedAt"`
}

type BusinessInfo struct {
	Name        string    `json:"name"`
	DBA         string    `json:"dba,omitempty"`
	EIN         string    `json:"ein"`
	EntityType  string    `json:"entityType"`
	FoundedDate time.Time `json:"foundedDate"`
	NAICSCode   string    `json:"naicsCode,omitempty"`
	Website     string    `json:"website,omitempty"`
}

type Location struct {
	Primary       bool           `json:"primary"`
	Address       Address        `json:"address"`
	FullTimeCount int            `json:"fullTimeCount"`
	PartTimeCount int            `json:"partTimeCount"`
	SquareFootage int            `json:"squareFootage"`
	ActivityCodes []ActivityCode `json:"activityCodes"`
}

type Address struct {
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// ActivityCode is a class-of-business code with the payroll exposed under it.
type ActivityCode struct {
	Code    string   `json:"code"`
	Payroll Currency `json:"payroll"`
}

type Contact struct {
	Primary   bool   `json:"primary"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// PrimaryContact returns the contact marked primary. The validator
// guarantees at most one; the first contact is the fallback.
func (a *Application) PrimaryContact() Contact {
	for _, c := range a.Contacts {
		if c.Primary {
			return c
		}
	}
	if len(a.Contacts) > 0 {
		return a.Contacts[0]
	}
	return Contact{}
}

// PrimaryLocation returns the location marked primary, falling back to the
// first location when none is flagged.
func (a *Application) PrimaryLocation() Location {
	for _, l := range a.Locations {
		if l.Primary {
			return l
		}
	}
	if len(a.Locations) > 0 {
		return a.Locations[0]
	}
	return Location{}
}

// PolicyOfType returns the first policy of the given type, if present.
func (a *Application) PolicyOfType(pt PolicyType) (Policy, bool) {
	for _, p := range a.Policies {
		if p.Type == pt {
			return p, true
		}
	}
	return Policy{}, false
}

// YearsInBusiness returns whole years between the founded date and now,
// never negative. Several carriers encode this computed fact as a question.
func (a *Application) YearsInBusiness(now time.Time) int {
	if a.Business.FoundedDate.IsZero() || a.Business.FoundedDate.After(now) {
		return 0
	}
	years := int(now.Sub(a.Business.FoundedDate).Hours() / (24 * 365.25))
	if years < 0 {
		return 0
	}
	return years
}
