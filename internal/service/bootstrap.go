package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-pricing-engine/internal/common/config"
	"loan-pricing-engine/internal/common/database"
	apperrors "loan-pricing-engine/internal/common/errors"
	"loan-pricing-engine/internal/common/logger"
	"loan-pricing-engine/internal/pricing"
	"loan-pricing-engine/internal/riskdata"
)

// BuildEngine assembles a pricing engine from configuration: resolves
// the field table source (file or postgres), loads the optional
// graduate and institution tables, and validates everything. The
// returned cleanup func closes any database connection it opened.
func BuildEngine(ctx context.Context, cfg *config.Config, log logger.Logger) (*pricing.Engine, func(), error) {
	cleanup := func() {}

	var fields *riskdata.FieldTable
	var err error

	switch cfg.Data.Source {
	case "postgres":
		pg, pgErr := database.NewPostgres(cfg.Database.Postgres)
		if pgErr != nil {
			return nil, cleanup, apperrors.NewDataSourceFailedError(pgErr)
		}
		cleanup = func() { _ = pg.Close() }
		if pingErr := pg.Ping(ctx); pingErr != nil {
			cleanup()
			return nil, func() {}, apperrors.NewDataSourceFailedError(pingErr)
		}
		fields, err = riskdata.LoadFieldTableFromPostgres(ctx, pg.DB)
	default:
		fields, err = riskdata.LoadFieldTable(cfg.Data.FieldRiskPath)
	}
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	opts := make([]pricing.Option, 0, 2)

	if cfg.Data.GraduateProgramsPath != "" {
		grads, gErr := riskdata.LoadGraduateTable(cfg.Data.GraduateProgramsPath)
		if gErr != nil {
			log.Warn("graduate program table unavailable", map[string]interface{}{
				"path":  cfg.Data.GraduateProgramsPath,
				"error": gErr.Error(),
			})
		} else {
			opts = append(opts, pricing.WithGraduatePrograms(grads))
		}
	}

	if cfg.Data.InstitutionAdjustmentsPath != "" {
		inst, iErr := riskdata.LoadInstitutionAdjustments(cfg.Data.InstitutionAdjustmentsPath)
		if iErr != nil {
			log.Warn("institution adjustment table unavailable", map[string]interface{}{
				"path":  cfg.Data.InstitutionAdjustmentsPath,
				"error": iErr.Error(),
			})
		} else {
			opts = append(opts, pricing.WithInstitutionAdjustments(inst))
		}
	}

	engine, err := pricing.New(pricing.ParamsFromConfig(cfg.Pricing), fields, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	log.Info("pricing engine ready", map[string]interface{}{
		"model":  cfg.Pricing.Model,
		"fields": fields.Len(),
		"source": cfg.Data.Source,
	})
	return engine, cleanup, nil
}

// BuildCache connects the optional redis result cache. Returns a nil
// client when caching is disabled or redis is unreachable; the service
// degrades to computing every request.
func BuildCache(ctx context.Context, cfg *config.Config, log logger.Logger) (*redis.Client, time.Duration) {
	if !cfg.Cache.Enabled {
		return nil, 0
	}

	rc, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", map[string]interface{}{"error": err.Error()})
		return nil, 0
	}
	if err := rc.Ping(ctx); err != nil {
		log.Warn("redis unreachable, caching disabled", map[string]interface{}{"error": err.Error()})
		_ = rc.Close()
		return nil, 0
	}

	return rc.Client, time.Duration(cfg.Cache.TTLMinutes) * time.Minute
}
