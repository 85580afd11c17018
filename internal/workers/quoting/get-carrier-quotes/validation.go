// internal/workers/quoting/get-carrier-quotes/validation.go
package getcarrierquotes

import (
	"fmt"
	"strings"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/models"
)

// validateInput checks the minimum an application needs before any carrier
// work starts. Anything failing here is a modeling bug upstream, never a
// retry candidate.
func validateInput(input *Input) *errors.StandardError {
	var problems []string

	app := &input.Application
	if app.ID == "" {
		problems = append(problems, "application.id is required")
	}
	if app.Business.Name == "" {
		problems = append(problems, "application.business.name is required")
	}
	if len(app.Policies) == 0 {
		problems = append(problems, "application must request at least one policy")
	}
	if len(app.Locations) == 0 {
		problems = append(problems, "application must have at least one location")
	}

	for i, p := range app.Policies {
		switch p.Type {
		case models.PolicyTypeBOP, models.PolicyTypeGL, models.PolicyTypeWC:
		default:
			problems = append(problems, fmt.Sprintf("policies[%d].type %q is not supported", i, p.Type))
		}
		if p.EffectiveDate.IsZero() {
			problems = append(problems, fmt.Sprintf("policies[%d].effectiveDate is required", i))
		}
	}

	if len(problems) > 0 {
		return errors.NewQuoteInputInvalidError(strings.Join(problems, "; "))
	}
	return nil
}
