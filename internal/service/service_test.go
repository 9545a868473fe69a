package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/common/logger"
	"loan-pricing-engine/internal/pricing"
	"loan-pricing-engine/internal/riskdata"
)

func testService(t *testing.T, cache *redis.Client) *PricingService {
	t.Helper()

	fields, err := riskdata.NewFieldTable([]riskdata.FieldRiskProfile{
		{Name: "Philosophy/Religion", MedianEarnings: 28500, UnderemploymentRate: 0.30},
		{Name: "Engineering", MedianEarnings: 52900, UnderemploymentRate: 0.013},
	})
	require.NoError(t, err)

	grads, err := riskdata.NewGraduateTable([]riskdata.GraduateProgram{
		{Program: "Law (JD)", MedianEarnings: 72500, MedianDebt: 118500, UnderemploymentRate: 0.14, TypicalDurationYears: 10},
	})
	require.NoError(t, err)

	engine, err := pricing.New(pricing.DefaultParams(), fields, pricing.WithGraduatePrograms(grads))
	require.NoError(t, err)

	return New(engine, cache, 5*time.Minute, logger.NewTestLogger(t))
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestPriceLoanWithoutCache(t *testing.T) {
	svc := testService(t, nil)

	res, err := svc.PriceLoan(context.Background(), pricing.Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.165, res.AdjustedRate, 1e-9)
}

func TestPriceLoanCacheRoundTrip(t *testing.T) {
	svc := testService(t, testRedis(t))
	ctx := context.Background()
	req := pricing.Request{Field: "Philosophy/Religion", LoanAmount: 30000}

	first, err := svc.PriceLoan(ctx, req)
	require.NoError(t, err)

	// A cache hit returns the stored result, ID included.
	second, err := svc.PriceLoan(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.AdjustedRate, second.AdjustedRate)

	// A different request computes fresh.
	other, err := svc.PriceLoan(ctx, pricing.Request{Field: "Engineering", LoanAmount: 30000})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestPriceLoanCacheKeyCoversFairness(t *testing.T) {
	svc := testService(t, testRedis(t))
	ctx := context.Background()
	income := 25000.0

	plain, err := svc.PriceLoan(ctx, pricing.Request{Field: "Philosophy/Religion", LoanAmount: 30000})
	require.NoError(t, err)

	subsidized, err := svc.PriceLoan(ctx, pricing.Request{
		Field: "Philosophy/Religion", LoanAmount: 30000,
		ApplyFairness: true, FamilyIncome: &income,
	})
	require.NoError(t, err)

	assert.NotEqual(t, plain.ID, subsidized.ID)
	assert.Less(t, subsidized.AdjustedRate, plain.AdjustedRate)
}

func TestPriceLoanErrorNotCached(t *testing.T) {
	svc := testService(t, testRedis(t))

	_, err := svc.PriceLoan(context.Background(), pricing.Request{
		Field: "Alchemy", LoanAmount: 30000,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))
}

func TestPriceGraduateLoanCached(t *testing.T) {
	svc := testService(t, testRedis(t))
	ctx := context.Background()

	first, err := svc.PriceGraduateLoan(ctx, "Law (JD)", true, 25000)
	require.NoError(t, err)
	second, err := svc.PriceGraduateLoan(ctx, "Law (JD)", true, 25000)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Income is part of the key.
	third, err := svc.PriceGraduateLoan(ctx, "Law (JD)", true, 90000)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCompareScenariosPassthrough(t *testing.T) {
	svc := testService(t, nil)

	scenarios, err := svc.CompareScenarios(context.Background(), "Philosophy/Religion", 30000)
	require.NoError(t, err)
	assert.Len(t, scenarios, 4)

	_, err = svc.CompareScenarios(context.Background(), "Alchemy", 30000)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))
}

func TestUnreachableRedisDegradesToCompute(t *testing.T) {
	// Dead address: every cache call errors but pricing still works.
	dead := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
	})
	svc := testService(t, dead)

	res, err := svc.PriceLoan(context.Background(), pricing.Request{
		Field: "Engineering", LoanAmount: 30000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.86365, res.AdjustedRate, 1e-9)
}
