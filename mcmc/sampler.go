// SPDX-License-Identifier: MIT
// Package mcmc: the sampler loop. Ordered steps, a burn-in stage, an
// optional thinning interval, and trace recording for tracked parameters.

package mcmc

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/bart/trace"
)

// Sampler iterates an ordered list of steps, one full pass per MCMC
// iteration, recording tracked parameter values after burn-in.
type Sampler struct {
	steps    []Step
	logger   *zap.Logger
	logEvery int
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithLogger sets the progress logger. The default is zap.NewNop(), which
// keeps library use silent.
func WithLogger(logger *zap.Logger) SamplerOption {
	return func(s *Sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLogEvery sets how many sampling iterations pass between progress log
// lines. Default 1000.
func WithLogEvery(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.logEvery = n
		}
	}
}

// NewSampler creates an empty sampler; add steps with AddStep in the order
// they should execute within an iteration.
func NewSampler(opts ...SamplerOption) *Sampler {
	s := &Sampler{logger: zap.NewNop(), logEvery: 1000}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddStep appends a step to the iteration order.
func (s *Sampler) AddStep(step Step) {
	s.steps = append(s.steps, step)
}

// iterate performs n full passes over the step list.
func (s *Sampler) iterate(n int) {
	for i := 0; i < n; i++ {
		for _, step := range s.steps {
			step.DoStep()
		}
	}
}

// Run executes the sampler: SetStartingValue on every parameter, burnin
// warm-up iterations, then nsamples recorded draws with thin iterations
// between consecutive records. A total of burnin + thin·nsamples
// iterations is performed.
// Returns ErrNoSteps, ErrBadSampleSize, or ErrBadThin on misuse.
func (s *Sampler) Run(burnin, nsamples, thin int) (*trace.Samples, error) {
	if len(s.steps) == 0 {
		return nil, ErrNoSteps
	}
	if nsamples < 1 {
		return nil, ErrBadSampleSize
	}
	if thin < 1 {
		return nil, ErrBadThin
	}

	tracked := 0
	for _, step := range s.steps {
		step.Parameter().SetStartingValue()
		if step.Parameter().Tracked() {
			tracked++
		}
	}
	s.logger.Info("sampler starting",
		zap.Int("steps", len(s.steps)),
		zap.Int("tracked", tracked),
		zap.Int("burnin", burnin),
		zap.Int("nsamples", nsamples),
		zap.Int("thin", thin),
	)

	if burnin > 0 {
		s.iterate(burnin)
		s.logger.Info("burn-in complete", zap.Int("iterations", burnin))
	}

	samples := trace.NewSamples()
	for i := 0; i < nsamples; i++ {
		s.iterate(thin)
		for _, step := range s.steps {
			p := step.Parameter()
			if p.Tracked() {
				samples.Append(p.Name(), p.Value())
			}
		}
		if (i+1)%s.logEvery == 0 {
			s.logger.Info("sampling progress",
				zap.Int("drawn", i+1),
				zap.Int("of", nsamples),
			)
		}
	}
	s.logger.Info("sampling complete", zap.Int("nsamples", nsamples))

	return samples, nil
}
