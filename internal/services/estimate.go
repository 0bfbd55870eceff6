package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dkaras/relocost/internal/api"
	"github.com/dkaras/relocost/internal/estimate"
	"github.com/dkaras/relocost/internal/models"
)

// configTTL is how long fetched reference data stays fresh.
const configTTL = 5 * time.Minute

// EstimateService exposes single-estimate calculation, online against the
// remote service or offline via the local mirror of the cost formula, plus
// cached access to the reference data (countries, durations).
type EstimateService struct {
	client api.Client

	// now is a test seam.
	now func() time.Time

	mu       sync.Mutex
	cached   *models.RemoteConfig
	cachedAt time.Time
}

func NewEstimateService(client api.Client) *EstimateService {
	return &EstimateService{client: client, now: time.Now}
}

// Config returns the remote reference data, re-fetching it only after the
// cache window expires.
func (s *EstimateService) Config(ctx context.Context) (*models.RemoteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.cachedAt) < configTTL {
		return s.cached, nil
	}

	cfg, err := s.client.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch config: %w", err)
	}

	s.cached = cfg
	s.cachedAt = s.now()
	return cfg, nil
}

// Calculate validates the inputs and submits them to the remote service.
func (s *EstimateService) Calculate(ctx context.Context, in models.EstimationInputs) (*models.EstimationResult, error) {
	if err := estimate.Validate(in); err != nil {
		return nil, err
	}
	res, err := s.client.CalculateEstimate(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("calculate estimate: %w", err)
	}
	return res, nil
}

// CalculateOffline derives the breakdown locally without a network round
// trip, using the same formula the service applies.
func (s *EstimateService) CalculateOffline(in models.EstimationInputs) (*models.EstimationResult, error) {
	return estimate.Calculate(in)
}
