package memsort

// MergingMethod selects how the stable path materializes a merge step.
type MergingMethod int

const (
	// MergeDefault picks copy-both for 2-way merging and general-by-stages
	// for 4-way merging.
	MergeDefault MergingMethod = iota
	// MergeCopyBoth copies every input run into the scratch buffer before
	// merging back. Simple and fast for cheap-to-copy records, 2-way only.
	MergeCopyBoth
	// MergeGeneralByStages merges incrementally with the smallest scratch
	// footprint the step allows and needs no sentinel values. It is the only
	// method compatible with 4-way merging and custom comparators.
	MergeGeneralByStages
)

// Config holds configuration settings for the sorting engine
type Config struct {
	MinRunLen        int           // minimum run length; shorter natural runs are extended by binary insertion sort
	Merging          MergingMethod // merge materialization strategy for the stable path
	MergeWays        int           // maximum runs merged per step on the stable path, 2 or 4
	BaseCaseSize     int           // sample sort switches to insertion sort at or below this size
	BucketCount      int           // number of sample sort buckets per partition step (max 256)
	OversampleFactor int           // sample size per splitter when picking splitters
	NumWorkers       int           // workers for sample sort bucket recursion; 1 disables parallelism
}

// DefaultConfig returns the default configuration options used if none provided.
// The stable-path defaults mirror the reference powersort instantiation
// (minimum run length 24, copy-both 2-way merging).
func DefaultConfig() *Config {
	return &Config{
		MinRunLen:        24,
		Merging:          MergeDefault,
		MergeWays:        2,
		BaseCaseSize:     32,
		BucketCount:      64,
		OversampleFactor: 4,
		NumWorkers:       1,
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	cc := *d
	if c != nil {
		cc = *c // callers keep their struct; defaults are applied to a copy
	}
	if cc.MinRunLen <= 0 {
		cc.MinRunLen = d.MinRunLen
	}
	if cc.MergeWays <= 0 {
		cc.MergeWays = d.MergeWays
	}
	if cc.Merging == MergeDefault {
		if cc.MergeWays == 4 {
			cc.Merging = MergeGeneralByStages
		} else {
			cc.Merging = MergeCopyBoth
		}
	}
	if cc.BaseCaseSize <= 0 {
		cc.BaseCaseSize = d.BaseCaseSize
	}
	if cc.BucketCount <= 0 {
		cc.BucketCount = d.BucketCount
	}
	if cc.OversampleFactor <= 0 {
		cc.OversampleFactor = d.OversampleFactor
	}
	if cc.NumWorkers <= 0 {
		cc.NumWorkers = d.NumWorkers
	}
	return &cc
}

// validate rejects configurations the engine cannot honor.
func (c *Config) validate() error {
	if c.MinRunLen < 2 {
		return &ConfigError{Field: "MinRunLen", Value: c.MinRunLen, Reason: "must be at least 2"}
	}
	if c.MergeWays != 2 && c.MergeWays != 4 {
		return &ConfigError{Field: "MergeWays", Value: c.MergeWays, Reason: "must be 2 or 4"}
	}
	if c.MergeWays == 4 && c.Merging == MergeCopyBoth {
		// The tuned copy-both 4-way merge requires sentinel values and cannot
		// carry a failing comparator, so it is not offered.
		return &ConfigError{Field: "Merging", Value: c.Merging, Reason: "copy-both merging supports 2-way only"}
	}
	if c.Merging != MergeCopyBoth && c.Merging != MergeGeneralByStages {
		return &ConfigError{Field: "Merging", Value: c.Merging, Reason: "unknown merging method"}
	}
	if c.BucketCount < 2 || c.BucketCount > 256 {
		return &ConfigError{Field: "BucketCount", Value: c.BucketCount, Reason: "must be between 2 and 256"}
	}
	return nil
}
