// internal/quoting/claims/aggregate.go

// Package claims buckets an application's loss history into policy years
// relative to the effective date of the policy being quoted.
package claims

import (
	"time"

	"carrier-quoting/internal/models"
)

const hoursPerYear = 24 * 365.25

// ToPolicyYears groups claims into policy-year buckets. Year 1 covers the
// twelve months immediately before effectiveDate, year 2 the twelve months
// before that, up to horizonYears.
//
// Only claims whose policy type matches are considered. Claims with no
// event date are never defaulted into a bucket: they are excluded and
// returned in missingDates so the caller can log the data-quality
// condition. Years with no claims are absent from the map; callers treat
// absence as zero.
func ToPolicyYears(cls []models.Claim, policyType models.PolicyType, effectiveDate time.Time, horizonYears int) (buckets map[int]models.ClaimYearBucket, missingDates int) {
	buckets = make(map[int]models.ClaimYearBucket)
	for _, c := range cls {
		if c.PolicyType != policyType {
			continue
		}
		if c.EventDate == nil || c.EventDate.IsZero() {
			missingDates++
			continue
		}
		year := bucketYear(*c.EventDate, effectiveDate)
		if year < 1 || year > horizonYears {
			continue
		}
		b := buckets[year]
		b.Year = year
		b.ClaimCount++
		if c.LostTime {
			b.LostTimeCount++
		}
		b.TotalPaid += c.AmountPaid
		b.TotalReserved += c.AmountReserved
		buckets[year] = b
	}
	return buckets, missingDates
}

// bucketYear is floor(years between event and effective date) + 1. Claims
// on or after the effective date land in year 0 and are dropped by the
// caller's range check.
func bucketYear(event, effective time.Time) int {
	years := effective.Sub(event).Hours() / hoursPerYear
	if years < 0 {
		return 0
	}
	return int(years) + 1
}
