package models

// ClientProfile is the matching target built from a first-party client
// record. All fields are strings; absence is the empty string, never null.
// A profile is built once per matching run and is immutable afterwards.
type ClientProfile struct {
	Sector        string `json:"sector"`
	Stage         string `json:"stage"`
	Location      string `json:"location"`
	FundingAmount string `json:"funding_amount"`
}

// IsEmpty reports whether no field of the profile carries a value. An empty
// profile is valid input; every criterion simply contributes zero.
func (p ClientProfile) IsEmpty() bool {
	return p.Sector == "" && p.Stage == "" && p.Location == "" && p.FundingAmount == ""
}
