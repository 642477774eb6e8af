package service

// Practical input ranges accepted by the calculator.
const (
	MinPrincipal    = 1_000.0
	MaxPrincipal    = 10_000_000.0
	MinInterestRate = 0.0
	MaxInterestRate = 20.0 // % anual
	MinTermYears    = 1
	MaxTermYears    = 50

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	// Bump the version when the cached payload shape changes.
	cacheKeyPrefix = "mortgage:v1"
)
