// internal/quoting/transport/auth.go
package transport

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"
)

// TokenResponse holds a carrier's bearer-token reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// FetchBearerToken performs the client-credentials exchange as a distinct
// call through the transport, so it is audited like every other carrier
// call. There is no retry here: a failed token fetch surfaces immediately
// and re-submission is the caller's decision.
func FetchBearerToken(ctx context.Context, c *Client, carrierID, applicationID, host, path string, creds models.Credentials) (TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.Secret)

	resp, err := c.Send(ctx, Request{
		CarrierID:     carrierID,
		ApplicationID: applicationID,
		Operation:     "auth",
		Method:        http.MethodPost,
		Host:          host,
		Path:          path,
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		},
		Body: form.Encode(),
	}, FormatJSON)
	if err != nil {
		return TokenResponse{}, err
	}
	if !resp.IsSuccess() {
		return TokenResponse{}, errors.NewCarrierAuthFailedError(carrierID,
			fmt.Errorf("token endpoint returned %d", resp.StatusCode))
	}

	var token TokenResponse
	if err := resp.DecodeJSON(&token); err != nil {
		return TokenResponse{}, errors.NewCarrierAuthFailedError(carrierID, err)
	}
	if token.AccessToken == "" {
		return TokenResponse{}, errors.NewCarrierAuthFailedError(carrierID,
			fmt.Errorf("token endpoint returned no access_token"))
	}
	return token, nil
}

// AuthHeaders builds the authentication headers for a carrier call.
// bearerToken is only consulted for the bearer scheme.
func AuthHeaders(creds models.Credentials, bearerToken string) map[string]string {
	switch creds.Scheme {
	case models.AuthSchemeBasic:
		raw := creds.Username + ":" + creds.Password
		return map[string]string{
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)),
		}
	case models.AuthSchemeBearer:
		if strings.TrimSpace(bearerToken) == "" {
			return map[string]string{}
		}
		return map[string]string{"Authorization": "Bearer " + bearerToken}
	case models.AuthSchemeAPIKey:
		return map[string]string{"X-Api-Key": creds.APIKey}
	}
	return map[string]string{}
}
