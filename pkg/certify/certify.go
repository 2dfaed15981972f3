// Package certify turns a generator configuration into a certification
// report: it generates the sample, runs the statistical suite, and keeps the
// result in the report store so that repeated requests for the same
// configuration are answered from disk.
package certify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"randcert-go/pkg/congruential"
	"randcert-go/pkg/log"
	"randcert-go/pkg/machine"
	"randcert-go/pkg/randtest"
	"randcert-go/pkg/reportstore"
)

type Certifier struct {
	store *reportstore.Store
}

// New returns a Certifier. A nil store disables caching and persistence.
func New(store *reportstore.Store) *Certifier {
	return &Certifier{store: store}
}

// Certify returns the report for cfg. Invalid configurations are returned as
// a *congruential.ConfigurationError. A sequence that leaves the modulus
// range is not an error: the report is marked unusable and carries the
// failure.
func (c *Certifier) Certify(ctx context.Context, cfg congruential.Config) (*reportstore.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fp := reportstore.Fingerprint(cfg)

	if c.store != nil {
		cached, err := c.store.Lookup(cfg)
		switch {
		case err == nil:
			log.Debug().Str("report", cached.ID.String()).Uint64("fingerprint", fp).Msg("certification served from store")
			return cached, nil
		case !errors.Is(err, reportstore.ErrNotFound):
			return nil, fmt.Errorf("report lookup: %w", err)
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	r := &reportstore.Report{
		ID:          id,
		Fingerprint: fp,
		CreatedAt:   time.Now().UTC(),
		Config:      cfg,
		Count:       cfg.Count,
	}
	if r.Machine, err = machine.ID(); err != nil {
		log.Warn().Err(err).Msg("machine id unavailable")
	}

	start := time.Now()
	sample, err := congruential.Generate(cfg)
	if err != nil {
		var seqErr *congruential.SequenceValidityError
		if !errors.As(err, &seqErr) {
			return nil, err
		}
		r.Failure = err.Error()
		log.Warn().Err(err).Int("count", cfg.Count).Msg("sequence rejected")
	} else {
		res, err := randtest.Evaluate(ctx, sample)
		if err != nil {
			return nil, err
		}
		r.Width = sample.Width
		r.Verdicts = res.Verdicts
		r.Outcomes = res.Outcomes
		r.Usable = res.Verdicts.Usable()
	}

	if c.store != nil {
		if err := c.store.Put(r); err != nil {
			return nil, fmt.Errorf("report store: %w", err)
		}
	}
	log.Info().
		Str("report", r.ID.String()).
		Int("count", cfg.Count).
		Int("pool_size", cfg.PoolSize).
		Bool("usable", r.Usable).
		Dur("elapsed", time.Since(start)).
		Msg("certified")
	return r, nil
}

// Generate validates cfg and produces its sample without testing it.
func Generate(cfg congruential.Config) (*congruential.Sample, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return congruential.Generate(cfg)
}

// TestValues runs the suite over an externally supplied sequence.
func TestValues(ctx context.Context, values []uint64, modulus uint64) (randtest.Report, error) {
	sample, err := congruential.NewSample(values, modulus)
	if err != nil {
		return randtest.Report{}, err
	}
	res, err := randtest.Evaluate(ctx, sample)
	if err != nil {
		return randtest.Report{}, err
	}
	log.Info().Int("count", len(values)).Bool("usable", res.Verdicts.Usable()).Msg("tested external sequence")
	return res, nil
}
