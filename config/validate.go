package config

// Validate checks a RunConfig against the kernel and cutoff invariants
// (K >= 1, non-negative cutoffs, CutoffPrimary <= CutoffOverflow, and so
// on). It is the single gate every CLI subcommand runs before constructing
// any kernel.
func (c RunConfig) Validate() error {
	if c.K < 1 {
		return ErrInvalidK
	}
	if c.CutoffPrimary < 0 || c.CutoffOverflow < 0 {
		return ErrInvalidCutoff
	}
	if c.CutoffPrimary > c.CutoffOverflow {
		return ErrCutoffOrder
	}
	if c.BucketWidthSeconds <= 0 {
		return ErrInvalidBucketWidth
	}
	if c.Workers < 1 || c.Threads < 1 {
		return ErrInvalidWorkers
	}
	if len(c.Resolutions) == 0 {
		return ErrNoResolutions
	}
	return nil
}

// FinestResolution returns the largest (finest) resolution in Resolutions.
// NodeH3Indexer and HexAggregator both key off this value.
func (c RunConfig) FinestResolution() int {
	finest := c.Resolutions[0]
	for _, r := range c.Resolutions[1:] {
		if r > finest {
			finest = r
		}
	}
	return finest
}
