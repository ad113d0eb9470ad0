package config

import "time"

// SandboxConfig describes the external execution backend. DispatchTimeout is
// the orchestrator's own wall-clock bound on one dispatch; it protects
// against a hung backend and is independent of the per-execution time limit
// the backend enforces on submitted code.
type SandboxConfig struct {
	URL             string
	DispatchTimeout time.Duration
}

func NewSandboxConfig() *SandboxConfig {
	return &SandboxConfig{
		URL:             getEnv("SANDBOX_URL", "http://localhost:9000/execute"),
		DispatchTimeout: time.Duration(getIntEnv("SANDBOX_DISPATCH_TIMEOUT_SEC", 30)) * time.Second,
	}
}
