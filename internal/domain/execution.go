package domain

// CompilationDiagnostic is a single compiler message as reported by the backend
type CompilationDiagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// RuntimeDiagnostic is a single runtime error message as reported by the backend
type RuntimeDiagnostic struct {
	Message string `json:"message"`
}

// ExecutionOutcome is the normalized shape of one execution attempt. It is
// produced either by the execution backend (decoded from its response body)
// or by the dispatcher when the backend could not be reached. Exactly one of
// Output (success) or ErrorKind+Message (failure) is meaningful.
type ExecutionOutcome struct {
	Success           bool                    `json:"success"`
	Output            string                  `json:"output,omitempty"`
	ErrorKind         ErrorKind               `json:"error,omitempty"`
	Message           string                  `json:"message,omitempty"`
	Details           string                  `json:"details,omitempty"`
	Stderr            string                  `json:"stderr,omitempty"`
	CompilationErrors []CompilationDiagnostic `json:"compilationErrors,omitempty"`
	RuntimeErrors     []RuntimeDiagnostic     `json:"runtimeErrors,omitempty"`
	FormattedError    string                  `json:"formattedError,omitempty"`
	ExecutionTimeMs   int64                   `json:"executionTime,omitempty"`
	MemoryUsedBytes   int64                   `json:"memoryUsed,omitempty"`
}

// JudgedError is a failed ExecutionOutcome mapped into the verdict taxonomy.
// Immutable once produced.
type JudgedError struct {
	Verdict         Verdict `json:"type"`
	Message         string  `json:"message"`
	Details         string  `json:"details"`
	ExecutionTimeMs int64   `json:"executionTime"`
	MemoryUsedBytes int64   `json:"memoryUsed"`
}
