// internal/quoting/carriers/harborline/models.go
package harborline

// Harborline's v2 REST API. JSON both ways; the proposal document comes
// back base64-encoded inline.

type quoteRequest struct {
	ExternalID string         `json:"externalId"`
	Test       bool           `json:"test"`
	Business   businessInfo   `json:"business"`
	Locations  []locationInfo `json:"locations"`
	Coverage   coverageInfo   `json:"coverage"`
	Questions  []questionInfo `json:"questions"`
	LossYears  []lossYearInfo `json:"lossHistory"`
}

type businessInfo struct {
	Name            string `json:"name"`
	FEIN            string `json:"fein"`
	EntityType      string `json:"entityType"`
	NAICS           string `json:"naics,omitempty"`
	YearsInBusiness int    `json:"yearsInBusiness"`
}

type locationInfo struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	SquareFootage int    `json:"squareFootage"`
	Employees     int    `json:"employees"`
}

type coverageInfo struct {
	EffectiveDate  string     `json:"effectiveDate"`
	ExpirationDate string     `json:"expirationDate"`
	Limits         limitsInfo `json:"limits"`
	Deductible     int        `json:"deductible"`
}

type limitsInfo struct {
	Occurrence        int `json:"occurrence"`
	Aggregate         int `json:"aggregate"`
	ProductsAggregate int `json:"productsAggregate"`
}

type questionInfo struct {
	Code   string `json:"code"`
	Answer string `json:"answer"`
}

type lossYearInfo struct {
	Year     int     `json:"year"`
	Claims   int     `json:"claims"`
	Paid     float64 `json:"paid"`
	Reserved float64 `json:"reserved"`
}

type quoteResponse struct {
	Status   string        `json:"status"`
	QuoteID  string        `json:"quoteId"`
	Premium  *float64      `json:"premium,omitempty"`
	Bindable bool          `json:"bindable"`
	Proposal *proposalInfo `json:"proposal,omitempty"`
	Messages []messageInfo `json:"messages,omitempty"`
}

type proposalInfo struct {
	Document    string `json:"document"`
	ContentType string `json:"contentType"`
}

type messageInfo struct {
	Code string `json:"code"`
	Text string `json:"text"`
}
