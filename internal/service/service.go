// Package service wraps the pricing engine with caching, metrics, and
// logging. The engine itself stays pure; everything operational lives
// here.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/common/logger"
	"loan-pricing-engine/internal/common/metrics"
	"loan-pricing-engine/internal/pricing"
)

// PricingService fronts the engine. The redis cache is optional; with a
// nil client every call computes. Caching is sound because pricing is
// deterministic over the immutable tables.
type PricingService struct {
	engine *pricing.Engine
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func New(engine *pricing.Engine, cache *redis.Client, ttl time.Duration, log logger.Logger) *PricingService {
	return &PricingService{
		engine: engine,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "pricing-service"}),
	}
}

// PriceLoan computes (or serves from cache) one loan pricing.
func (s *PricingService) PriceLoan(ctx context.Context, req pricing.Request) (*pricing.Result, error) {
	key := cacheKey(req)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	model := string(s.engine.Params().Model)
	start := time.Now()

	result, err := s.engine.PriceLoan(req)
	if err != nil {
		metrics.PricingErrors.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		s.logger.Error("pricing failed", map[string]interface{}{
			"field": req.Field,
			"error": err.Error(),
		})
		return nil, err
	}

	metrics.PricingRequests.WithLabelValues(model).Inc()
	metrics.PricingDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	if result.Ensemble != nil {
		metrics.ModelAgreement.WithLabelValues(result.Field).Set(result.Ensemble.Agreement)
	}

	s.logger.Info("loan priced", map[string]interface{}{
		"field":        result.Field,
		"adjustedRate": result.AdjustedRate,
		"defaultProb":  result.DefaultProbability,
	})

	s.toCache(ctx, key, result)
	return result, nil
}

// PriceGraduateLoan computes (or serves from cache) a graduate program
// pricing.
func (s *PricingService) PriceGraduateLoan(ctx context.Context, program string, applyFairness bool, familyIncome float64) (*pricing.Result, error) {
	key := fmt.Sprintf("pricing:grad:%s:%t:%.2f", program, applyFairness, familyIncome)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := s.engine.PriceGraduateLoan(program, applyFairness, familyIncome)
	if err != nil {
		metrics.PricingErrors.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}

	metrics.PricingRequests.WithLabelValues("graduate").Inc()
	s.toCache(ctx, key, result)
	return result, nil
}

// CompareScenarios passes through to the engine; comparisons are not
// cached since they recombine already-cheap pricings.
func (s *PricingService) CompareScenarios(ctx context.Context, field string, loanAmount float64) ([]pricing.Scenario, error) {
	scenarios, err := s.engine.CompareScenarios(field, loanAmount)
	if err != nil {
		metrics.PricingErrors.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}
	return scenarios, nil
}

func (s *PricingService) fromCache(ctx context.Context, key string) *pricing.Result {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	var result pricing.Result
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheHits.WithLabelValues("hit").Inc()
	return &result
}

func (s *PricingService) toCache(ctx context.Context, key string, result *pricing.Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func cacheKey(req pricing.Request) string {
	income := -1.0
	if req.FamilyIncome != nil {
		income = *req.FamilyIncome
	}
	inst := "-"
	if req.Institution != nil {
		rate := -1.0
		if req.Institution.AdmissionRate != nil {
			rate = *req.Institution.AdmissionRate
		}
		inst = fmt.Sprintf("%s|%.4f|%s", req.Institution.Carnegie, rate, req.Institution.ControlType)
	}
	return fmt.Sprintf("pricing:%s:%.2f:%t:%.2f:%s", req.Field, req.LoanAmount, req.ApplyFairness, income, inst)
}
