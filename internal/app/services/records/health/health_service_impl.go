package health

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"medirec-service/internal/app/contracts"
	"medirec-service/internal/app/services/shared/transport"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const healthCacheKey = "records:health:online"

var (
	healthServiceInstance contracts.RecordsHealthService
	onceHealthService     sync.Once
)

// recordsHealthService probes the backend liveness endpoint. Save-path
// pre-flights go through a Redis-backed cache and a rate limiter so a burst
// of saves cannot turn into a burst of probes; a background poller keeps the
// cached answer warm.
type recordsHealthService struct {
	BaseUrl      string
	Sender       transport.Sender
	Redis        contracts.RedisRepository
	CacheTTL     time.Duration
	PollInterval time.Duration
	Limiter      *rate.Limiter
	Log          *zap.Logger
}

func NewRecordsHealthService(
	baseUrl string,
	sender transport.Sender,
	redisRepository contracts.RedisRepository,
	cacheTTL time.Duration,
	pollInterval time.Duration,
	logger *zap.Logger,
) contracts.RecordsHealthService {
	onceHealthService.Do(func() {
		healthServiceInstance = &recordsHealthService{
			BaseUrl:      strings.TrimSuffix(baseUrl, "/"),
			Sender:       sender,
			Redis:        redisRepository,
			CacheTTL:     cacheTTL,
			PollInterval: pollInterval,
			Limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
			Log:          logger,
		}
	})
	return healthServiceInstance
}

// CheckHealth does a single uncached probe; any 2xx means online.
func (s *recordsHealthService) CheckHealth(ctx context.Context) error {
	response, err := s.Sender.Send(ctx, &transport.Request{
		Method: constvars.MethodGet,
		URL:    fmt.Sprintf("%s/health", s.BaseUrl),
	})
	if err != nil {
		return exceptions.ErrBackendUnreachable(err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return exceptions.ErrBackendUnreachable(fmt.Errorf("health probe returned %d", response.StatusCode))
	}
	return nil
}

func (s *recordsHealthService) EnsureOnline(ctx context.Context) error {
	cached, err := s.Redis.Get(ctx, healthCacheKey)
	if err == nil && cached != "" {
		return nil
	}

	// The limiter collapses concurrent pre-flights after a cache miss into
	// at most one probe per second.
	if !s.Limiter.Allow() {
		if err := s.Limiter.Wait(ctx); err != nil {
			return exceptions.ErrBackendUnreachable(err)
		}
	}

	if err := s.CheckHealth(ctx); err != nil {
		s.Log.Warn("recordsHealthService.EnsureOnline backend offline",
			zap.String(constvars.LoggingBackendURLKey, s.BaseUrl),
			zap.Error(err),
		)
		return err
	}

	s.markOnline(ctx)
	return nil
}

func (s *recordsHealthService) StartPoller(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.CheckHealth(ctx); err != nil {
					s.Log.Warn("recordsHealthService.StartPoller probe failed",
						zap.String(constvars.LoggingBackendURLKey, s.BaseUrl),
						zap.Error(err),
					)
					continue
				}
				s.markOnline(ctx)
			}
		}
	}()
}

func (s *recordsHealthService) markOnline(ctx context.Context) {
	if err := s.Redis.Set(ctx, healthCacheKey, "ok", s.CacheTTL); err != nil {
		s.Log.Warn("recordsHealthService.markOnline failed to cache health state",
			zap.Error(err),
		)
	}
}
