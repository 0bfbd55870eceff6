package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/estimate"
	"github.com/dkaras/relocost/internal/models"
)

// Estimate interactively collects deployment inputs and requests a cost
// breakdown from the service. When the service is unreachable the breakdown
// is computed locally with the same formula and marked as such.
func (a *App) Estimate(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first.")
		return common.ErrNotAuthenticated
	}

	in, err := a.collectInputs(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	result, err := a.estimates.Calculate(ctx, *in)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Session expired, please login again.")
			return err
		}
		offline, offErr := a.estimates.CalculateOffline(*in)
		if offErr != nil {
			fmt.Fprintln(a.out, "Error:", err)
			return err
		}
		fmt.Fprintln(a.out, "Service unavailable, showing offline estimate:")
		a.printResult(offline)
		return nil
	}

	a.printResult(result)
	return nil
}

func (a *App) collectInputs(ctx context.Context) (*models.EstimationInputs, error) {
	cfg, err := a.estimates.Config(ctx)
	if err != nil {
		a.log.Warn(ctx, "remote config unavailable, using defaults", "error", err)
		cfg = fallbackConfig()
	}

	var names []string
	for _, c := range cfg.Countries {
		names = append(names, c.Name)
	}
	fmt.Fprintln(a.out, "Countries:", strings.Join(names, ", "))
	fmt.Fprintln(a.out, "Durations (months):", joinInts(cfg.Durations))

	home, err := a.GetSimpleText("Home country")
	if err != nil {
		return nil, err
	}
	host, err := a.GetSimpleText("Host country")
	if err != nil {
		return nil, err
	}
	salary, err := a.GetFloat("Monthly salary", 0)
	if err != nil {
		return nil, err
	}
	months, err := a.GetInt("Duration (months)", 0)
	if err != nil {
		return nil, err
	}
	allowance, err := a.GetFloat("Daily allowance", 0)
	if err != nil {
		return nil, err
	}
	days, err := a.GetInt("Working days per month", estimate.DefaultWorkingDays)
	if err != nil {
		return nil, err
	}

	return &models.EstimationInputs{
		HomeCountry:         home,
		HostCountry:         host,
		MonthlySalary:       salary,
		DurationMonths:      months,
		DailyAllowance:      allowance,
		WorkingDaysPerMonth: days,
	}, nil
}

func (a *App) printResult(r *models.EstimationResult) {
	fmt.Fprintf(a.out, "Base salary:          %12.2f\n", r.BaseSalary)
	fmt.Fprintf(a.out, "Per diem:             %12.2f\n", r.PerDiem)
	fmt.Fprintf(a.out, "Admin fees:           %12.2f\n", r.AdminFees)
	fmt.Fprintf(a.out, "Host tax:             %12.2f\n", r.HostTax)
	fmt.Fprintf(a.out, "Host social security: %12.2f\n", r.HostSocialSecurity)
	fmt.Fprintf(a.out, "Total additional cost:%12.2f\n", r.TotalAdditionalCost)
}

// ShowConfig prints the reference data the estimate form is built from.
func (a *App) ShowConfig(ctx context.Context) error {
	cfg, err := a.estimates.Config(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Remote config unavailable, showing defaults.")
		cfg = fallbackConfig()
	}
	for _, c := range cfg.Countries {
		fmt.Fprintf(a.out, "  %-4s %-20s %s\n", c.Code, c.Name, c.Currency)
	}
	fmt.Fprintln(a.out, "Durations (months):", joinInts(cfg.Durations))
	return nil
}

func fallbackConfig() *models.RemoteConfig {
	cfg := &models.RemoteConfig{Durations: estimate.FallbackDurations}
	for _, name := range estimate.FallbackCountries {
		cfg.Countries = append(cfg.Countries, models.Country{Name: name})
	}
	return cfg
}

func joinInts(vals []int) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}
