// Package estimate mirrors the service's cost formula so the CLI can
// produce a breakdown without a network round trip.
package estimate

import (
	"fmt"

	"github.com/dkaras/relocost/internal/models"
)

// Cost model parameters. The per diem is tax-exempt: the host tax and the
// social security contribution apply to the base salary only, and the base
// salary itself is excluded from the additional-cost total.
const (
	AdminFee           = 2450.0
	HostTaxRate        = 0.25
	SocialSecurityRate = 0.35
	DefaultWorkingDays = 22
)

// Fallback reference data used when the remote configuration is not
// reachable.
var (
	FallbackCountries = []string{"Finland", "Brazil", "United Kingdom", "Germany", "USA", "Singapore"}
	FallbackDurations = []int{3, 6, 9, 12, 18, 24}
)

// Validate checks inputs the way the server would before calculating.
func Validate(in models.EstimationInputs) error {
	if in.MonthlySalary < 0 {
		return fmt.Errorf("monthly salary must not be negative")
	}
	if in.DurationMonths <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if in.DailyAllowance < 0 {
		return fmt.Errorf("daily allowance must not be negative")
	}
	if in.WorkingDaysPerMonth < 0 {
		return fmt.Errorf("working days per month must not be negative")
	}
	return nil
}

// Calculate derives the full cost breakdown for one deployment. A zero
// WorkingDaysPerMonth falls back to DefaultWorkingDays.
func Calculate(in models.EstimationInputs) (*models.EstimationResult, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	workingDays := in.WorkingDaysPerMonth
	if workingDays == 0 {
		workingDays = DefaultWorkingDays
	}

	baseSalary := in.MonthlySalary * float64(in.DurationMonths)
	perDiem := in.DailyAllowance * float64(workingDays) * float64(in.DurationMonths)
	hostTax := baseSalary * HostTaxRate
	hostSocialSecurity := baseSalary * SocialSecurityRate

	return &models.EstimationResult{
		BaseSalary:          baseSalary,
		PerDiem:             perDiem,
		AdminFees:           AdminFee,
		HostTax:             hostTax,
		HostSocialSecurity:  hostSocialSecurity,
		TotalAdditionalCost: perDiem + AdminFee + hostTax + hostSocialSecurity,
	}, nil
}
