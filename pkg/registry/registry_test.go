// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = `{
	"version": "3",
	"carriers": [
		{
			"carrierId": "stonepoint",
			"policyType": "GL",
			"supportedLimits": [["1,000,000", "2,000,000", "1,000,000"]],
			"questionCodes": {"priorCoverage": "GENRL01"},
			"entityTypes": ["LLC", "CORPORATION"],
			"host": "https://api.stonepoint.example",
			"credentials": {"scheme": "basic", "username": "agency", "password": "pw"},
			"claimsHorizonYears": 3
		},
		{
			"carrierId": "harborline",
			"policyType": "BOP",
			"supportedLimits": [["300000", "600000", "600000"]],
			"host": "https://api.harborline.example",
			"credentials": {"scheme": "bearer", "clientId": "id", "secret": "sec"}
		},
		{
			"carrierId": "meridian",
			"policyType": "WC",
			"supportedLimits": [["100000", "500000", "100000"]],
			"host": "https://api.meridian.example",
			"credentials": {"scheme": "api_key", "apiKey": "key"}
		}
	]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carriers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	reg, err := Load(writeFile(t, validFile), 0)
	require.NoError(t, err)

	assert.Equal(t, "3", reg.Version)
	assert.Equal(t, []string{"harborline", "meridian", "stonepoint"}, reg.CarrierIDs())

	p, ok := reg.Profile("stonepoint", models.PolicyTypeGL)
	require.True(t, ok)
	assert.Equal(t, 3, p.ClaimsHorizonYears)
	assert.Equal(t, models.AuthSchemeBasic, p.Credentials.Scheme)
	assert.Equal(t, "GENRL01", p.QuestionCodes["priorCoverage"])

	p, ok = reg.Profile("harborline", models.PolicyTypeBOP)
	require.True(t, ok)
	assert.Equal(t, 5, p.ClaimsHorizonYears, "horizon defaults when omitted")

	_, ok = reg.Profile("stonepoint", models.PolicyTypeWC)
	assert.False(t, ok)
}

func TestLoadConfiguredHorizonDefault(t *testing.T) {
	reg, err := Load(writeFile(t, validFile), 2)
	require.NoError(t, err)

	p, ok := reg.Profile("harborline", models.PolicyTypeBOP)
	require.True(t, ok)
	assert.Equal(t, 2, p.ClaimsHorizonYears, "configured default applies when the profile omits a horizon")

	p, ok = reg.Profile("stonepoint", models.PolicyTypeGL)
	require.True(t, ok)
	assert.Equal(t, 3, p.ClaimsHorizonYears, "an explicit profile horizon wins over the configured default")
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing carriers key",
			`{"version": "1"}`,
		},
		{
			"bad policy type",
			`{"version": "1", "carriers": [{"carrierId": "x", "policyType": "AUTO",
				"supportedLimits": [["1","1","1"]], "host": "h",
				"credentials": {"scheme": "api_key", "apiKey": "k"}}]}`,
		},
		{
			"two-element limit row",
			`{"version": "1", "carriers": [{"carrierId": "x", "policyType": "GL",
				"supportedLimits": [["1","1"]], "host": "h",
				"credentials": {"scheme": "api_key", "apiKey": "k"}}]}`,
		},
		{
			"basic auth without password",
			`{"version": "1", "carriers": [{"carrierId": "x", "policyType": "GL",
				"supportedLimits": [["1","1","1"]], "host": "h",
				"credentials": {"scheme": "basic", "username": "u"}}]}`,
		},
		{
			"no credentials scheme",
			`{"version": "1", "carriers": [{"carrierId": "x", "policyType": "GL",
				"supportedLimits": [["1","1","1"]], "host": "h"}]}`,
		},
		{
			"empty supported limits",
			`{"version": "1", "carriers": [{"carrierId": "x", "policyType": "GL",
				"supportedLimits": [], "host": "h",
				"credentials": {"scheme": "api_key", "apiKey": "k"}}]}`,
		},
		{
			"duplicate carrier and policy type",
			`{"version": "1", "carriers": [
				{"carrierId": "x", "policyType": "GL", "supportedLimits": [["1","1","1"]],
					"host": "h", "credentials": {"scheme": "api_key", "apiKey": "k"}},
				{"carrierId": "x", "policyType": "GL", "supportedLimits": [["1","1","1"]],
					"host": "h", "credentials": {"scheme": "api_key", "apiKey": "k"}}
			]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content), 0)
			require.Error(t, err)

			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeProfileInvalid, stdErr.Code)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), 0)
	require.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	reg, err := Load(writeFile(t, validFile), 0)
	require.NoError(t, err)

	disabled := false
	sandbox := true
	reg.Apply(map[string]Override{
		"meridian": {Enabled: &disabled},
		"harborline": {
			Host:        "https://sandbox.harborline.example",
			Sandbox:     &sandbox,
			Credentials: models.Credentials{Secret: "env-secret"},
		},
	})

	_, ok := reg.Profile("meridian", models.PolicyTypeWC)
	assert.False(t, ok, "disabled carrier is removed")

	p, ok := reg.Profile("harborline", models.PolicyTypeBOP)
	require.True(t, ok)
	assert.Equal(t, "https://sandbox.harborline.example", p.Host)
	assert.True(t, p.Sandbox)
	assert.Equal(t, "env-secret", p.Credentials.Secret)
	assert.Equal(t, "id", p.Credentials.ClientID, "unset override fields keep file values")
}

func TestProfilesForIsOrdered(t *testing.T) {
	reg, err := Load(writeFile(t, `{
		"version": "1",
		"carriers": [
			{"carrierId": "zeta", "policyType": "GL", "supportedLimits": [["1","1","1"]],
				"host": "h", "credentials": {"scheme": "api_key", "apiKey": "k"}},
			{"carrierId": "alpha", "policyType": "GL", "supportedLimits": [["1","1","1"]],
				"host": "h", "credentials": {"scheme": "api_key", "apiKey": "k"}}
		]
	}`), 0)
	require.NoError(t, err)

	profiles := reg.ProfilesFor(models.PolicyTypeGL)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alpha", profiles[0].CarrierID)
	assert.Equal(t, "zeta", profiles[1].CarrierID)
}
