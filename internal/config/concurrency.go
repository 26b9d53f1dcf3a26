package config

import "runtime"

// ApplyAdaptiveDefaults fills configuration values left at zero with
// estimates based on the host. Explicit values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Concurrency == 0 {
		cfg.Concurrency = EstimateScanConcurrency()
	}
	return cfg
}

// EstimateScanConcurrency returns the number of bases to scan in parallel.
// Every base is CPU bound, so the estimate follows the core count, capped to
// keep the progress display readable.
func EstimateScanConcurrency() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 16:
		return numCPU
	default:
		return 16
	}
}
