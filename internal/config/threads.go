package config

import "github.com/agbru/primecalc/internal/sysmon"

// Thread count resolution chain (highest priority first):
//   1. --threads / -t flag
//   2. PRIMECALC_THREADS environment variable
//   3. threads key in the YAML config file
//   4. Host detection (sysmon.HardwareConcurrency), queried once here

// ResolveThreads fills in cfg.Threads from detect when it is zero. The
// result is always at least 1.
func ResolveThreads(cfg AppConfig, detect func() sysmon.Concurrency) AppConfig {
	if cfg.Threads == 0 {
		c := detect()
		cfg.Threads = c.Count
		cfg.ThreadSource = c.Source
	}
	if cfg.Threads < 1 {
		cfg.Threads = sysmon.FallbackConcurrency
		cfg.ThreadSource = "fallback"
	}
	return cfg
}
