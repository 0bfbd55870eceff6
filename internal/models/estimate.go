// Package models defines the domain and wire types exchanged with the
// remote estimation service.
package models

// EstimationInputs describes a single deployment to estimate. Field names on
// the wire follow the API contract.
type EstimationInputs struct {
	HomeCountry         string  `json:"homeCountry"`
	HostCountry         string  `json:"hostCountry"`
	MonthlySalary       float64 `json:"monthlySalary"`
	DurationMonths      int     `json:"durationMonths"`
	DailyAllowance      float64 `json:"dailyAllowance"`
	WorkingDaysPerMonth int     `json:"workingDaysPerMonth"`
}

// EstimationResult is the cost breakdown returned by the service.
//
// BaseSalary is reported separately and is not part of
// TotalAdditionalCost: the total covers only the incremental cost of the
// deployment (per diem, admin fees, host tax, host social security).
type EstimationResult struct {
	BaseSalary          float64 `json:"baseSalary"`
	PerDiem             float64 `json:"perDiem"`
	AdminFees           float64 `json:"adminFees"`
	HostTax             float64 `json:"hostTax"`
	HostSocialSecurity  float64 `json:"hostSocialSecurity"`
	TotalAdditionalCost float64 `json:"totalAdditionalCost"`
}

// Country is one selectable country from the remote configuration.
type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// RemoteConfig is the reference data served by GET /config.
type RemoteConfig struct {
	Countries []Country `json:"countries"`
	Durations []int     `json:"durations"`
}
