// internal/quoting/carriers/harborline/adapter.go

// Package harborline quotes business owner's policies against Harborline
// Mutual's REST API. Bearer auth over a client-credentials exchange; the
// access token is shared across runs through the token cache.
package harborline

import (
	"context"
	"encoding/base64"
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
	CarrierID = "harborline"
	tokenPath = "/oauth2/token"
	quotePath = "/v2/quotes"
)

var answerTokens = questions.Tokens{Yes: "true", No: "false"}

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

	token, err := a.deps.Tokens.Token(ctx, CarrierID, func(ctx context.Context) (transport.TokenResponse, error) {
		return transport.FetchBearerToken(ctx, a.deps.Transport, CarrierID, app.ID,
			a.profile.Host, tokenPath, a.profile.Credentials)
	})
	if err != nil {
		return b.Error(errMessage(err))
	}

	resp, err := a.deps.Transport.Send(ctx, transport.Request{
		CarrierID:     CarrierID,
		ApplicationID: app.ID,
		Operation:     "quote",
		Method:        http.MethodPost,
		Host:          a.profile.Host,
		Path:          quotePath,
		Headers:       transport.AuthHeaders(a.profile.Credentials, token),
		Body:          a.buildRequest(app, policy, matched),
	}, transport.FormatJSON)
	if err != nil {
		return b.Error(errMessage(err))
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// The cached token may have been revoked server side. Drop it so
		// the next run re-authenticates; this run surfaces the failure.
		a.deps.Tokens.Invalidate(ctx, CarrierID)
		return b.Error(errors.NewCarrierAuthFailedError(CarrierID, nil).Message)
	}
	if !resp.IsSuccess() {
		return b.Error(errors.NewCarrierResponseError(CarrierID, resp.StatusCode).Message)
	}

	var out quoteResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return b.Error(errors.NewMalformedResponseError(CarrierID, err).Message)
	}

	return a.classify(b, &out, matched)
}

// NormalizeStatus maps Harborline's status vocabulary onto the canonical
// statuses.
func (a *Adapter) NormalizeStatus(raw string) outcome.Status {
	switch raw {
	case "QUOTED":
		return outcome.StatusQuoted
	case "REFERRED", "UNDER_REVIEW":
		return outcome.StatusReferred
	case "DECLINED":
		return outcome.StatusDeclined
	}
	return outcome.StatusError
}

func (a *Adapter) classify(b *outcome.Builder, out *quoteResponse, matched models.LimitTuple) outcome.QuoteOutcome {
	for _, m := range out.Messages {
		if m.Text != "" {
			b.AddReason("%s", m.Text)
		}
	}

	letter, err := decodeProposal(out.Proposal)
	if err != nil {
		return b.Error(errors.NewMalformedResponseError(CarrierID, err).Message)
	}

	switch a.NormalizeStatus(out.Status) {
	case outcome.StatusQuoted:
		if out.Premium == nil || out.QuoteID == "" {
			return b.Error("quoted response missing premium or quote id")
		}
		if out.Bindable {
			b.MarkBindable()
		}
		return b.Quoted(out.QuoteID, matched, models.DollarsToCurrency(*out.Premium), letter)

	case outcome.StatusReferred:
		var premium *models.Currency
		if out.Premium != nil {
			p := models.DollarsToCurrency(*out.Premium)
			premium = &p
		}
		return b.Referred(out.QuoteID, matched, premium, letter)

	case outcome.StatusDeclined:
		if len(out.Messages) == 0 {
			b.AddReason("carrier declined the risk")
		}
		return b.Declined()
	}

	return b.Error("unrecognized carrier status " + strconv.Quote(out.Status))
}

func (a *Adapter) buildRequest(app *models.Application, policy models.Policy, matched models.LimitTuple) *quoteRequest {
	req := &quoteRequest{
		ExternalID: app.ID,
		Test:       a.profile.Sandbox,
		Business: businessInfo{
			Name:            app.Business.Name,
			FEIN:            app.Business.EIN,
			EntityType:      app.Business.EntityType,
			NAICS:           app.Business.NAICSCode,
			YearsInBusiness: app.YearsInBusiness(a.deps.Clock()),
		},
		Coverage: coverageInfo{
			EffectiveDate:  policy.EffectiveDate.Format("2006-01-02"),
			ExpirationDate: policy.ExpirationDate.Format("2006-01-02"),
			Limits: limitsInfo{
				Occurrence:        matched[0],
				Aggregate:         matched[1],
				ProductsAggregate: matched[2],
			},
			Deductible: int(policy.Deductible.Dollars()),
		},
	}

	for _, loc := range app.Locations {
		req.Locations = append(req.Locations, locationInfo{
			Street:        loc.Address.Street1,
			City:          loc.Address.City,
			State:         loc.Address.State,
			Zip:           loc.Address.Zip,
			SquareFootage: loc.SquareFootage,
			Employees:     loc.FullTimeCount + loc.PartTimeCount,
		})
	}

	for _, res := range questions.ResolveAll(app.Questions, a.profile.QuestionCodes, answerTokens) {
		req.Questions = append(req.Questions, questionInfo{Code: res.Code, Answer: res.Value})
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
			Year:     bk.Year,
			Claims:   bk.ClaimCount,
			Paid:     bk.TotalPaid.Dollars(),
			Reserved: bk.TotalReserved.Dollars(),
		})
	}

	return req
}

func decodeProposal(p *proposalInfo) (*outcome.QuoteLetter, error) {
	if p == nil || p.Document == "" {
		return nil, nil
	}
	content, err := base64.StdEncoding.DecodeString(p.Document)
	if err != nil {
		return nil, err
	}
	mime := p.ContentType
	if mime == "" {
		mime = "application/pdf"
	}
	return &outcome.QuoteLetter{Content: content, MimeType: mime}, nil
}

func errMessage(err error) string {
	if se, ok := err.(*errors.StandardError); ok {
		return se.Message
	}
	return err.Error()
}
