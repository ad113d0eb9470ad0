package domain

// Verdict represents the classification of a testcase outcome or of a whole judgement
type Verdict string

const (
	VerdictAccepted            Verdict = "Accepted"
	VerdictWrongAnswer         Verdict = "Wrong Answer"
	VerdictCompilationError    Verdict = "Compilation Error"
	VerdictTimeLimitExceeded   Verdict = "Time Limit Exceeded"
	VerdictMemoryLimitExceeded Verdict = "Memory Limit Exceeded"
	VerdictOutputLimitExceeded Verdict = "Output Limit Exceeded"
	VerdictRuntimeError        Verdict = "Runtime Error"
	VerdictInvalidInput        Verdict = "Invalid Input"
	VerdictSystemError         Verdict = "System Error"

	// VerdictPassed labels individual passing testcase rows, never a whole
	// judgement.
	VerdictPassed Verdict = "Passed"
)

// ErrorKind is the closed set of error categories the execution backend can
// report, plus the categories the dispatcher itself produces when the backend
// cannot be reached at all.
type ErrorKind string

const (
	ErrorKindCompilation      ErrorKind = "COMPILATION_ERROR"
	ErrorKindTimeout          ErrorKind = "TIMEOUT_ERROR"
	ErrorKindExecutionTimeout ErrorKind = "EXECUTION_TIMEOUT"
	ErrorKindMemoryLimit      ErrorKind = "MEMORY_LIMIT_EXCEEDED"
	ErrorKindRuntime          ErrorKind = "RUNTIME_ERROR"
	ErrorKindOutputLimit      ErrorKind = "OUTPUT_LIMIT_EXCEEDED"
	ErrorKindSegfault         ErrorKind = "SEGMENTATION_FAULT"
	ErrorKindFloatingPoint    ErrorKind = "FLOATING_POINT_EXCEPTION"

	// Dispatcher-level kinds, never reported by the backend itself.
	ErrorKindNetwork ErrorKind = "NETWORK_ERROR"
	ErrorKindBackend ErrorKind = "BACKEND_ERROR"
	ErrorKindUnknown ErrorKind = "UNKNOWN_ERROR"
)
