// internal/quoting/carriers/stonepoint/adapter.go

// Package stonepoint quotes general liability against Stonepoint Specialty's
// ACORD XML endpoint. One POST per application, HTTP Basic auth, no quote
// letter on the wire.
package stonepoint

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/claims"
	"carrier-quoting/internal/quoting/outcome"
	"carrier-quoting/internal/quoting/questions"
	"carrier-quoting/internal/quoting/transport"

	"github.com/google/uuid"
)

const (
	CarrierID = "stonepoint"
	quotePath = "/acord/gl/quote"
)

// answerTokens is Stonepoint's yes/no vocabulary.
var answerTokens = questions.Tokens{Yes: "YES", No: "NO"}

// overrides are question codes Stonepoint expects but the platform computes.
// STATE12 is the New York disclosure flag their underwriters require on
// every NY submission.
var overrides = adapter.OverrideTable{
	ByState: map[string]map[string]string{
		"NY": {"STATE12": "YES"},
	},
}

type Adapter struct {
	deps    adapter.Dependencies
	profile *models.CarrierProfile
}

func init() {
	adapter.Register(CarrierID, func(deps adapter.Dependencies, profile *models.CarrierProfile) adapter.CarrierAdapter {
		return &Adapter{deps: deps, profile: profile}
	})
}

func (a *Adapter) CarrierID() string             { return CarrierID }
func (a *Adapter) PolicyType() models.PolicyType { return a.profile.PolicyType }

func (a *Adapter) Quote(ctx context.Context, app *models.Application) outcome.QuoteOutcome {
	b := outcome.NewBuilder(CarrierID, a.profile.PolicyType)

	policy, ok := app.PolicyOfType(a.profile.PolicyType)
	if !ok {
		return b.Error("application carries no " + string(a.profile.PolicyType) + " policy")
	}

	matched, declined := adapter.Preflight(app, policy, a.profile, b)
	if declined != nil {
		return *declined
	}

	// Stonepoint rates off the NAICS code; without one there is no valid
	// request to send.
	if app.Business.NAICSCode == "" {
		return b.Error(errors.NewMissingIndustryCodeError(CarrierID).Message)
	}

	req, stdErr := a.buildRequest(app, policy, matched)
	if stdErr != nil {
		return b.Error(stdErr.Message)
	}

	resp, err := a.deps.Transport.Send(ctx, transport.Request{
		CarrierID:     CarrierID,
		ApplicationID: app.ID,
		Operation:     "quote",
		Method:        http.MethodPost,
		Host:          a.profile.Host,
		Path:          quotePath,
		Headers:       transport.AuthHeaders(a.profile.Credentials, ""),
		Body:          req,
	}, transport.FormatXML)
	if err != nil {
		return b.Error(errMessage(err))
	}
	if !resp.IsSuccess() {
		return b.Error(errors.NewCarrierResponseError(CarrierID, resp.StatusCode).Message)
	}

	var out quoteResponse
	if err := resp.DecodeXML(&out); err != nil {
		return b.Error(errors.NewMalformedResponseError(CarrierID, err).Message)
	}

	return a.classify(b, &out, matched)
}

// NormalizeStatus maps Stonepoint's MsgStatusCd vocabulary onto the
// canonical statuses.
func (a *Adapter) NormalizeStatus(raw string) outcome.Status {
	switch normalizeToken(raw) {
	case "SUCCESS", "QUOTED", "SUCCESSWITHINFO":
		return outcome.StatusQuoted
	case "REFERRAL", "REFERRED":
		return outcome.StatusReferred
	case "REJECTED", "DECLINED":
		return outcome.StatusDeclined
	}
	return outcome.StatusError
}

func (a *Adapter) classify(b *outcome.Builder, out *quoteResponse, matched models.LimitTuple) outcome.QuoteOutcome {
	for _, s := range out.Statuses {
		if s.Desc != "" {
			b.AddReason("%s", s.Desc)
		}
	}

	switch a.NormalizeStatus(out.StatusCd) {
	case outcome.StatusQuoted:
		premium, err := models.ParseCurrency(out.PremiumAmt)
		if err != nil || out.QuoteNumber == "" {
			return b.Error("quoted response missing premium or quote number")
		}
		if isAffirmativeInd(out.BindableInd) {
			b.MarkBindable()
		}
		return b.Quoted(out.QuoteNumber, matched, premium, nil)

	case outcome.StatusReferred:
		var premium *models.Currency
		if p, err := models.ParseCurrency(out.PremiumAmt); err == nil {
			premium = &p
		}
		return b.Referred(out.QuoteNumber, matched, premium, nil)

	case outcome.StatusDeclined:
		if len(out.Statuses) == 0 {
			b.AddReason("carrier declined the risk")
		}
		return b.Declined()
	}

	return b.Error("unrecognized carrier status " + strconv.Quote(out.StatusCd))
}

func (a *Adapter) buildRequest(app *models.Application, policy models.Policy, matched models.LimitTuple) (*quoteRequest, *errors.StandardError) {
	now := a.deps.Clock()

	req := &quoteRequest{
		SignonRq: signonRq{
			AgencyID: a.profile.Credentials.Username,
			ClientDt: now.Format(time.RFC3339),
		},
		QuoteRq: glQuoteRq{
			RqUID: uuid.NewString(),
			Insured: insuredInfo{
				CommercialName: app.Business.Name,
				LegalEntityCd:  app.Business.EntityType,
				NAICSCd:        app.Business.NAICSCode,
				FEIN:           app.Business.EIN,
			},
			Policy: policyInfo{
				EffectiveDt:      policy.EffectiveDate.Format("2006-01-02"),
				ExpirationDt:     policy.ExpirationDate.Format("2006-01-02"),
				PerOccurrenceAmt: matched[0],
				AggregateAmt:     matched[1],
				ProductsAggAmt:   matched[2],
				DeductibleAmt:    int(policy.Deductible.Dollars()),
			},
		},
	}
	if a.profile.Sandbox {
		req.QuoteRq.TestIndicator = "1"
	}

	for _, loc := range app.Locations {
		req.QuoteRq.Locations = append(req.QuoteRq.Locations, locationInfo{
			Street1:  loc.Address.Street1,
			City:     loc.Address.City,
			StateCd:  loc.Address.State,
			PostalCd: loc.Address.Zip,
			SqFtArea: loc.SquareFootage,
		})
		for _, ac := range loc.ActivityCodes {
			if ac.Code == "" {
				return nil, errors.NewMissingActivityCodeError(CarrierID)
			}
			req.QuoteRq.ClassAndPayroll = append(req.QuoteRq.ClassAndPayroll, classExposure{
				ClassCd:    ac.Code,
				PayrollAmt: int64(ac.Payroll),
			})
		}
	}

	for _, res := range questions.ResolveAll(app.Questions, a.profile.QuestionCodes, answerTokens) {
		req.QuoteRq.Questions = append(req.QuoteRq.Questions, questionInfo{
			QuestionCd: res.Code,
			AnswerTxt:  res.Value,
		})
	}
	req.QuoteRq.Questions = append(req.QuoteRq.Questions, computedQuestions(app, now)...)

	buckets, missing := claims.ToPolicyYears(app.Claims, a.profile.PolicyType, policy.EffectiveDate, a.profile.ClaimsHorizonYears)
	if missing > 0 {
		a.deps.Logger.Warn("claims without event dates excluded from loss history", map[string]interface{}{
			"carrier":       CarrierID,
			"applicationId": app.ID,
			"count":         missing,
		})
	}
	years := make([]int, 0, len(buckets))
	for y := range buckets {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		bk := buckets[y]
		req.QuoteRq.LossHistory = append(req.QuoteRq.LossHistory, lossYearInfo{
			YearNbr:     bk.Year,
			ClaimCount:  bk.ClaimCount,
			PaidAmt:     int64(bk.TotalPaid),
			ReservedAmt: int64(bk.TotalReserved),
		})
	}

	return req, nil
}

// computedQuestions injects the platform-computed codes, deterministically
// ordered for replayable audit bodies. GENRL34 is years in business,
// derived from the founding date rather than asked.
func computedQuestions(app *models.Application, now time.Time) []questionInfo {
	merged := overrides.For(app.PrimaryLocation().Address.State)
	merged["GENRL34"] = strconv.Itoa(app.YearsInBusiness(now))

	codes := make([]string, 0, len(merged))
	for c := range merged {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	out := make([]questionInfo, 0, len(codes))
	for _, c := range codes {
		out = append(out, questionInfo{QuestionCd: c, AnswerTxt: merged[c]})
	}
	return out
}

func normalizeToken(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-32)
		case r == ' ' || r == '_' || r == '-':
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func isAffirmativeInd(v string) bool {
	switch normalizeToken(v) {
	case "1", "Y", "YES", "TRUE":
		return true
	}
	return false
}

func errMessage(err error) string {
	if se, ok := err.(*errors.StandardError); ok {
		return se.Message
	}
	return err.Error()
}
