// pkg/registry/registry.go

// Package registry loads the carrier profile file that tells the platform
// which carriers to quote, against which endpoints, with which question
// mappings and supported limits. The file is declarative on purpose:
// onboarding a carrier variant is a data change, not a code change.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// profileSchema guards the file shape before any typed unmarshal. Typos in
// a carrier profile must fail loudly at startup, not as a silent empty
// slice at quote time.
const profileSchema = `{
	"type": "object",
	"required": ["version", "carriers"],
	"properties": {
		"version": {"type": "string"},
		"carriers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["carrierId", "policyType", "supportedLimits", "host"],
				"properties": {
					"carrierId": {"type": "string", "minLength": 1},
					"policyType": {"enum": ["BOP", "GL", "WC"]},
					"supportedLimits": {
						"type": "array",
						"items": {
							"type": "array",
							"items": {"type": "string"},
							"minItems": 3,
							"maxItems": 3
						}
					},
					"questionCodes": {
						"type": "object",
						"additionalProperties": {"type": "string"}
					},
					"entityTypes": {"type": "array", "items": {"type": "string"}},
					"host": {"type": "string", "minLength": 1},
					"credentials": {
						"type": "object",
						"properties": {
							"scheme": {"enum": ["basic", "bearer", "api_key"]}
						}
					},
					"sandbox": {"type": "boolean"},
					"claimsHorizonYears": {"type": "integer", "minimum": 1, "maximum": 5}
				}
			}
		}
	}
}`

const defaultClaimsHorizonYears = 5

// Registry holds the loaded profiles, keyed for lookup by carrier and
// policy type.
type Registry struct {
	Version  string
	profiles map[profileKey]*models.CarrierProfile
}

type profileKey struct {
	carrierID  string
	policyType models.PolicyType
}

type registryFile struct {
	Version  string                  `json:"version"`
	Carriers []models.CarrierProfile `json:"carriers"`
}

// Load reads, schema-validates, and cross-checks a profile file.
// defaultHorizonYears fills in the loss-history horizon for profiles that
// do not set their own; zero or negative falls back to five years.
func Load(path string, defaultHorizonYears int) (*Registry, error) {
	if defaultHorizonYears <= 0 {
		defaultHorizonYears = defaultClaimsHorizonYears
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read carrier registry %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(profileSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, errors.NewProfileInvalidError("registry", err.Error())
	}
	if !result.Valid() {
		details := ""
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return nil, errors.NewProfileInvalidError("registry", details)
	}

	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.NewProfileInvalidError("registry", err.Error())
	}

	reg := &Registry{
		Version:  file.Version,
		profiles: make(map[profileKey]*models.CarrierProfile, len(file.Carriers)),
	}
	for i := range file.Carriers {
		p := file.Carriers[i]
		if err := checkProfile(&p); err != nil {
			return nil, err
		}
		if p.ClaimsHorizonYears == 0 {
			p.ClaimsHorizonYears = defaultHorizonYears
		}

		key := profileKey{p.CarrierID, p.PolicyType}
		if _, dup := reg.profiles[key]; dup {
			return nil, errors.NewProfileInvalidError(p.CarrierID,
				fmt.Sprintf("duplicate profile for policy type %s", p.PolicyType))
		}
		reg.profiles[key] = &p
	}

	return reg, nil
}

// checkProfile enforces the constraints the JSON schema cannot express,
// mostly scheme and credential consistency.
func checkProfile(p *models.CarrierProfile) error {
	switch p.Credentials.Scheme {
	case models.AuthSchemeBasic:
		if p.Credentials.Username == "" || p.Credentials.Password == "" {
			return errors.NewProfileInvalidError(p.CarrierID, "basic auth requires username and password")
		}
	case models.AuthSchemeBearer:
		if p.Credentials.ClientID == "" || p.Credentials.Secret == "" {
			return errors.NewProfileInvalidError(p.CarrierID, "bearer auth requires clientId and secret")
		}
	case models.AuthSchemeAPIKey:
		if p.Credentials.APIKey == "" {
			return errors.NewProfileInvalidError(p.CarrierID, "api_key auth requires apiKey")
		}
	case "":
		return errors.NewProfileInvalidError(p.CarrierID, "credentials.scheme is required")
	default:
		return errors.NewProfileInvalidError(p.CarrierID,
			fmt.Sprintf("unknown auth scheme %q", p.Credentials.Scheme))
	}

	if len(p.SupportedLimits) == 0 {
		return errors.NewProfileInvalidError(p.CarrierID, "supportedLimits must not be empty")
	}
	return nil
}

// Override carries per-carrier settings from the environment config,
// layered over the file at startup. Secrets live in the environment, not
// in the committed profile file.
type Override struct {
	Enabled     *bool
	Host        string
	Sandbox     *bool
	Credentials models.Credentials
}

// Apply layers overrides onto the loaded profiles and removes carriers
// explicitly disabled. Unknown override keys are ignored.
func (r *Registry) Apply(overrides map[string]Override) {
	for key, p := range r.profiles {
		ov, ok := overrides[key.carrierID]
		if !ok {
			continue
		}
		if ov.Enabled != nil && !*ov.Enabled {
			delete(r.profiles, key)
			continue
		}
		if ov.Host != "" {
			p.Host = ov.Host
		}
		if ov.Sandbox != nil {
			p.Sandbox = *ov.Sandbox
		}
		mergeCredentials(&p.Credentials, ov.Credentials)
	}
}

func mergeCredentials(dst *models.Credentials, src models.Credentials) {
	if src.Scheme != "" {
		dst.Scheme = src.Scheme
	}
	if src.Username != "" {
		dst.Username = src.Username
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.ClientID != "" {
		dst.ClientID = src.ClientID
	}
	if src.Secret != "" {
		dst.Secret = src.Secret
	}
}

// Profile returns one carrier's profile for a policy type.
func (r *Registry) Profile(carrierID string, pt models.PolicyType) (*models.CarrierProfile, bool) {
	p, ok := r.profiles[profileKey{carrierID, pt}]
	return p, ok
}

// ProfilesFor returns every profile writing the given policy type, ordered
// by carrier id so quoting runs are deterministic.
func (r *Registry) ProfilesFor(pt models.PolicyType) []*models.CarrierProfile {
	var out []*models.CarrierProfile
	for key, p := range r.profiles {
		if key.policyType == pt {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CarrierID < out[j].CarrierID })
	return out
}

// CarrierIDs lists every configured carrier id, sorted and deduplicated.
func (r *Registry) CarrierIDs() []string {
	seen := map[string]bool{}
	var out []string
	for key := range r.profiles {
		if !seen[key.carrierID] {
			seen[key.carrierID] = true
			out = append(out, key.carrierID)
		}
	}
	sort.Strings(out)
	return out
}
