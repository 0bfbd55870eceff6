package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaras/relocost/internal/models"
)

func TestEstimateService_ConfigIsCached(t *testing.T) {
	fc := &fakeClient{
		ConfigResp: &models.RemoteConfig{
			Countries: []models.Country{{Code: "FI", Name: "Finland", Currency: "EUR"}},
			Durations: []int{3, 6, 9, 12, 18, 24},
		},
	}
	svc := NewEstimateService(fc)

	current := time.Now()
	svc.now = func() time.Time { return current }

	ctx := context.Background()

	cfg, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.Len(t, cfg.Durations, 6)

	_, err = svc.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.ConfigCalls, "second call within the window must hit the cache")

	// Past the cache window the data is re-fetched.
	current = current.Add(6 * time.Minute)
	_, err = svc.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fc.ConfigCalls)
}

func TestEstimateService_ConfigErrorIsNotCached(t *testing.T) {
	fc := &fakeClient{ConfigErr: errors.New("unreachable")}
	svc := NewEstimateService(fc)
	ctx := context.Background()

	_, err := svc.Config(ctx)
	require.Error(t, err)

	fc.ConfigErr = nil
	fc.ConfigResp = &models.RemoteConfig{Durations: []int{3}}
	cfg, err := svc.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, cfg.Durations)
}

func TestEstimateService_CalculatePassesInputsThrough(t *testing.T) {
	fc := &fakeClient{
		CalcResp: &models.EstimationResult{BaseSalary: 42000, TotalAdditionalCost: 37154},
	}
	svc := NewEstimateService(fc)

	in := models.EstimationInputs{
		HomeCountry: "Finland", HostCountry: "Brazil",
		MonthlySalary: 7000, DurationMonths: 6,
		DailyAllowance: 72, WorkingDaysPerMonth: 22,
	}
	res, err := svc.Calculate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 37154.0, res.TotalAdditionalCost)
	assert.Equal(t, in, fc.CalcIn)
}

func TestEstimateService_CalculateRejectsInvalidInputsLocally(t *testing.T) {
	fc := &fakeClient{}
	svc := NewEstimateService(fc)

	_, err := svc.Calculate(context.Background(), models.EstimationInputs{MonthlySalary: -1, DurationMonths: 6})
	require.Error(t, err)
	assert.Zero(t, fc.CalcIn, "invalid inputs must not reach the service")
}

func TestEstimateService_CalculateOfflineMatchesFormula(t *testing.T) {
	svc := NewEstimateService(&fakeClient{})

	res, err := svc.CalculateOffline(models.EstimationInputs{
		MonthlySalary: 7000, DurationMonths: 6,
		DailyAllowance: 72, WorkingDaysPerMonth: 22,
	})
	require.NoError(t, err)
	assert.Equal(t, 42000.0, res.BaseSalary)
	assert.Equal(t, 37154.0, res.TotalAdditionalCost)
}
