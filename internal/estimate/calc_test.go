package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaras/relocost/internal/models"
)

func TestCalculate_ReferenceScenario(t *testing.T) {
	res, err := Calculate(models.EstimationInputs{
		HomeCountry:         "Finland",
		HostCountry:         "Brazil",
		MonthlySalary:       7000,
		DurationMonths:      6,
		DailyAllowance:      72,
		WorkingDaysPerMonth: 22,
	})
	require.NoError(t, err)

	assert.Equal(t, 42000.0, res.BaseSalary)
	assert.Equal(t, 9504.0, res.PerDiem)
	assert.Equal(t, 2450.0, res.AdminFees)
	assert.Equal(t, 10500.0, res.HostTax)
	assert.Equal(t, 14700.0, res.HostSocialSecurity)
	assert.Equal(t, 37154.0, res.TotalAdditionalCost)
}

func TestCalculate_TotalExcludesBaseSalary(t *testing.T) {
	tests := []struct {
		name string
		in   models.EstimationInputs
	}{
		{"typical", models.EstimationInputs{MonthlySalary: 5000, DurationMonths: 12, DailyAllowance: 50, WorkingDaysPerMonth: 20}},
		{"no allowance", models.EstimationInputs{MonthlySalary: 9000, DurationMonths: 3, WorkingDaysPerMonth: 22}},
		{"zero salary", models.EstimationInputs{DurationMonths: 6, DailyAllowance: 80, WorkingDaysPerMonth: 22}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.in.MonthlySalary*float64(tt.in.DurationMonths), res.BaseSalary)
			assert.Equal(t, res.PerDiem+res.AdminFees+res.HostTax+res.HostSocialSecurity, res.TotalAdditionalCost)
			assert.GreaterOrEqual(t, res.TotalAdditionalCost, 0.0)
		})
	}
}

func TestCalculate_DefaultsWorkingDays(t *testing.T) {
	res, err := Calculate(models.EstimationInputs{
		MonthlySalary:  7000,
		DurationMonths: 6,
		DailyAllowance: 72,
	})
	require.NoError(t, err)

	// 72 * 22 * 6
	assert.Equal(t, 9504.0, res.PerDiem)
}

func TestCalculate_RejectsInvalidInputs(t *testing.T) {
	_, err := Calculate(models.EstimationInputs{MonthlySalary: -1, DurationMonths: 6})
	assert.Error(t, err)

	_, err = Calculate(models.EstimationInputs{MonthlySalary: 7000, DurationMonths: 0})
	assert.Error(t, err)

	_, err = Calculate(models.EstimationInputs{MonthlySalary: 7000, DurationMonths: 6, DailyAllowance: -5})
	assert.Error(t, err)
}
