// internal/quoting/carriers/meridian/adapter.go

// Package meridian quotes workers' compensation against Meridian Casualty.
// Their API negotiates a rating session first, then prices it; both calls
// carry the tenant API key.
package meridian

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/claims"
	"carrier-quoting/internal/quoting/outcome"
	"carrier-quoting/internal/quoting/questions"
	"carrier-quoting/internal/quoting/transport"
)

const (
	CarrierID   = "meridian"
	sessionPath = "/rating/sessions"
)

var answerTokens = questions.Tokens{Yes: "Y", No: "N"}

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

	req, stdErr := a.buildPriceRequest(app, policy, matched)
	if stdErr != nil {
		return b.Error(stdErr.Message)
	}

	sessionID, err := a.openSession(ctx, app)
	if err != nil {
		return b.Error(errMessage(err))
	}

	resp, err := a.deps.Transport.Send(ctx, transport.Request{
		CarrierID:     CarrierID,
		ApplicationID: app.ID,
		Operation:     "quote",
		Method:        http.MethodPost,
		Host:          a.profile.Host,
		Path:          sessionPath + "/" + sessionID + "/price",
		Headers:       transport.AuthHeaders(a.profile.Credentials, ""),
		Body:          req,
	}, transport.FormatJSON)
	if err != nil {
		return b.Error(errMessage(err))
	}
	if !resp.IsSuccess() {
		return b.Error(errors.NewCarrierResponseError(CarrierID, resp.StatusCode).Message)
	}

	var out priceResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return b.Error(errors.NewMalformedResponseError(CarrierID, err).Message)
	}

	return a.classify(b, &out, matched)
}

// NormalizeStatus maps Meridian's decision vocabulary onto the canonical
// statuses.
func (a *Adapter) NormalizeStatus(raw string) outcome.Status {
	switch raw {
	case "ACCEPT":
		return outcome.StatusQuoted
	case "REFER":
		return outcome.StatusReferred
	case "REJECT":
		return outcome.StatusDeclined
	}
	return outcome.StatusError
}

func (a *Adapter) openSession(ctx context.Context, app *models.Application) (string, error) {
	resp, err := a.deps.Transport.Send(ctx, transport.Request{
		CarrierID:     CarrierID,
		ApplicationID: app.ID,
		Operation:     "session",
		Method:        http.MethodPost,
		Host:          a.profile.Host,
		Path:          sessionPath,
		Headers:       transport.AuthHeaders(a.profile.Credentials, ""),
		Body:          sessionRequest{ExternalRef: app.ID, Test: a.profile.Sandbox},
	}, transport.FormatJSON)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", errors.NewCarrierResponseError(CarrierID, resp.StatusCode)
	}

	var session sessionResponse
	if err := resp.DecodeJSON(&session); err != nil {
		return "", errors.NewMalformedResponseError(CarrierID, err)
	}
	if session.SessionID == "" {
		return "", errors.NewMalformedResponseError(CarrierID, fmt.Errorf("session response missing sessionId"))
	}
	return session.SessionID, nil
}

func (a *Adapter) classify(b *outcome.Builder, out *priceResponse, matched models.LimitTuple) outcome.QuoteOutcome {
	for _, r := range out.ReferralReasons {
		if r != "" {
			b.AddReason("%s", r)
		}
	}

	switch a.NormalizeStatus(out.Decision) {
	case outcome.StatusQuoted:
		if out.TotalPremium == nil || out.QuoteRef == "" {
			return b.Error("accepted response missing premium or quote reference")
		}
		return b.Quoted(out.QuoteRef, matched, models.Currency(*out.TotalPremium), nil)

	case outcome.StatusReferred:
		var premium *models.Currency
		if out.TotalPremium != nil {
			p := models.Currency(*out.TotalPremium)
			premium = &p
		}
		return b.Referred(out.QuoteRef, matched, premium, nil)

	case outcome.StatusDeclined:
		if len(out.ReferralReasons) == 0 {
			b.AddReason("carrier declined the risk")
		}
		return b.Declined()
	}

	return b.Error("unrecognized carrier decision " + strconv.Quote(out.Decision))
}

func (a *Adapter) buildPriceRequest(app *models.Application, policy models.Policy, matched models.LimitTuple) (*priceRequest, *errors.StandardError) {
	primary := app.PrimaryLocation()

	req := &priceRequest{
		Employer: employerInfo{
			LegalName:  app.Business.Name,
			FEIN:       app.Business.EIN,
			EntityType: app.Business.EntityType,
			State:      primary.Address.State,
		},
		Liability: liabilityInfo{
			EachAccident: matched[0],
			PolicyLimit:  matched[1],
			EachEmployee: matched[2],
		},
		PriorLapse: policy.HadLapse,
	}

	for _, loc := range app.Locations {
		for _, ac := range loc.ActivityCodes {
			if ac.Code == "" {
				return nil, errors.NewMissingActivityCodeError(CarrierID)
			}
			req.Exposures = append(req.Exposures, exposureInfo{
				ClassCode: ac.Code,
				Payroll:   int64(ac.Payroll),
				State:     loc.Address.State,
			})
		}
	}
	// Workers' comp rates entirely off classified payroll; an application
	// with none cannot be priced.
	if len(req.Exposures) == 0 {
		return nil, errors.NewMissingActivityCodeError(CarrierID)
	}

	for _, res := range questions.ResolveAll(app.Questions, a.profile.QuestionCodes, answerTokens) {
		req.Questions = append(req.Questions, questionInfo{Code: res.Code, Value: res.Value})
	}

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
		req.LossYears = append(req.LossYears, lossYearInfo{
			Year:       bk.Year,
			ClaimCount: bk.ClaimCount,
			LostTime:   bk.LostTimeCount,
			PaidCents:  int64(bk.TotalPaid),
			OpenCents:  int64(bk.TotalReserved),
		})
	}

	return req, nil
}

func errMessage(err error) string {
	if se, ok := err.(*errors.StandardError); ok {
		return se.Message
	}
	return err.Error()
}
