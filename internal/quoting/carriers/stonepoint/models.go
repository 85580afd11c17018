// internal/quoting/carriers/stonepoint/models.go
package stonepoint

import "encoding/xml"

// Stonepoint speaks an ACORD-flavored XML dialect over a single POST.
// Field names follow their integration guide, not ours.

type quoteRequest struct {
	XMLName  xml.Name  `xml:"ACORD"`
	SignonRq signonRq  `xml:"SignonRq"`
	QuoteRq  glQuoteRq `xml:"InsuranceSvcRq>GeneralLiabilityQuoteRq"`
}

type signonRq struct {
	AgencyID string `xml:"SignonPswd>CustId>SPName"`
	ClientDt string `xml:"ClientDt"`
}

type glQuoteRq struct {
	RqUID           string          `xml:"RqUID"`
	TestIndicator   string          `xml:"TestInd,omitempty"`
	Insured         insuredInfo     `xml:"InsuredOrPrincipal"`
	Policy          policyInfo      `xml:"CommlPolicy"`
	Locations       []locationInfo  `xml:"Location"`
	Questions       []questionInfo  `xml:"QuestionAnswer"`
	LossHistory     []lossYearInfo  `xml:"LossYear"`
	ClassAndPayroll []classExposure `xml:"GeneralLiabilityClassification"`
}

type insuredInfo struct {
	CommercialName string `xml:"GeneralPartyInfo>NameInfo>CommlName>CommercialName"`
	LegalEntityCd  string `xml:"InsuredOrPrincipalInfo>BusinessInfo>LegalEntityCd"`
	NAICSCd        string `xml:"InsuredOrPrincipalInfo>BusinessInfo>NAICSCd"`
	FEIN           string `xml:"GeneralPartyInfo>NameInfo>TaxIdentity>TaxId"`
}

type policyInfo struct {
	EffectiveDt      string `xml:"ContractTerm>EffectiveDt"`
	ExpirationDt     string `xml:"ContractTerm>ExpirationDt"`
	PerOccurrenceAmt int    `xml:"Limit>PerOccurrenceAmt"`
	AggregateAmt     int    `xml:"Limit>AggregateAmt"`
	ProductsAggAmt   int    `xml:"Limit>ProductsCompletedOperationsAggregateAmt"`
	DeductibleAmt    int    `xml:"Deductible>FormatInteger"`
}

type locationInfo struct {
	Street1  string `xml:"Addr>Addr1"`
	City     string `xml:"Addr>City"`
	StateCd  string `xml:"Addr>StateProvCd"`
	PostalCd string `xml:"Addr>PostalCode"`
	SqFtArea int    `xml:"BldgArea>NumUnits"`
}

type classExposure struct {
	ClassCd    string `xml:"ClassCd"`
	PayrollAmt int64  `xml:"Exposure"`
}

type questionInfo struct {
	QuestionCd string `xml:"QuestionCd"`
	AnswerTxt  string `xml:"YesNoCd"`
}

type lossYearInfo struct {
	YearNbr     int   `xml:"LossYearNbr"`
	ClaimCount  int   `xml:"NumClaims"`
	PaidAmt     int64 `xml:"TotalPaidAmt"`
	ReservedAmt int64 `xml:"ReservedAmt"`
}

type quoteResponse struct {
	XMLName     xml.Name         `xml:"ACORD"`
	StatusCd    string           `xml:"InsuranceSvcRs>GeneralLiabilityQuoteRs>MsgStatus>MsgStatusCd"`
	QuoteNumber string           `xml:"InsuranceSvcRs>GeneralLiabilityQuoteRs>CompanysQuoteNumber"`
	PremiumAmt  string           `xml:"InsuranceSvcRs>GeneralLiabilityQuoteRs>CurrentTermAmt>Amt"`
	BindableInd string           `xml:"InsuranceSvcRs>GeneralLiabilityQuoteRs>BindableInd"`
	Statuses    []extendedStatus `xml:"InsuranceSvcRs>GeneralLiabilityQuoteRs>MsgStatus>ExtendedStatus"`
}

type extendedStatus struct {
	Code string `xml:"ExtendedStatusCd"`
	Desc string `xml:"ExtendedStatusDesc"`
}
