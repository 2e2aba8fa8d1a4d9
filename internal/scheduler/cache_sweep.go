package scheduler

import "github.com/rs/zerolog"

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// CacheSweepJob evicts expired cache entries.
type CacheSweepJob struct {
	cache Sweeper
	log   zerolog.Logger
}

// NewCacheSweepJob creates a sweep job over cache.
func NewCacheSweepJob(cache Sweeper, log zerolog.Logger) *CacheSweepJob {
	return &CacheSweepJob{cache: cache, log: log.With().Str("job", "cache_sweep").Logger()}
}

// Name returns the job name.
func (j *CacheSweepJob) Name() string { return "cache_sweep" }

// Run sweeps the cache once.
func (j *CacheSweepJob) Run() error {
	if n := j.cache.Sweep(); n > 0 {
		j.log.Debug().Int("evicted", n).Msg("swept expired cache entries")
	}
	return nil
}
