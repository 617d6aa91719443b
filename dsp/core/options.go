package core

import "runtime"

// ComputeConfig defines how CPU-bound work is fanned out.
type ComputeConfig struct {
	// Workers is the number of goroutines evaluating work items.
	Workers int
	// ChunkSize is the number of work items handed to a worker at once.
	ChunkSize int
}

// ComputeOption mutates a ComputeConfig.
type ComputeOption func(*ComputeConfig)

// DefaultComputeConfig uses one worker per schedulable CPU.
func DefaultComputeConfig() ComputeConfig {
	return ComputeConfig{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: 64,
	}
}

// WithWorkers sets the number of workers. A value of 1 runs serially.
func WithWorkers(workers int) ComputeOption {
	return func(cfg *ComputeConfig) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithChunkSize sets the number of work items per chunk.
func WithChunkSize(chunkSize int) ComputeOption {
	return func(cfg *ComputeConfig) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// ApplyComputeOptions applies zero or more options to the default config.
func ApplyComputeOptions(opts ...ComputeOption) ComputeConfig {
	cfg := DefaultComputeConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
