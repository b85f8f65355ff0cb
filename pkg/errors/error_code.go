package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidExecuteOrder  ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeInvalidMultiplier    ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106
	ErrCodeInvalidTimeframe     ErrorCode = 107
	ErrCodeInvalidSymbol        ErrorCode = 108

	// Market data errors (200-299)
	ErrCodeMarketDataFetchFailed ErrorCode = 200
	ErrCodeMarketDataParseFailed ErrorCode = 201
	ErrCodeMarketDataEmpty       ErrorCode = 202
	ErrCodeMarketDataInvalid     ErrorCode = 203
	ErrCodeMissingCredentials    ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeInsufficientData       ErrorCode = 303

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError  ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 401
	ErrCodeUnsupportedStrategy  ErrorCode = 402

	// Trading errors (500-599)
	ErrCodeOrderFailed          ErrorCode = 500
	ErrCodeOrderRejected        ErrorCode = 501
	ErrCodePositionNotFound     ErrorCode = 502
	ErrCodeInsufficientBalance  ErrorCode = 503
	ErrCodeTradingStateFailed   ErrorCode = 504
	ErrCodeTradingQueryFailed   ErrorCode = 505

	// Risk errors (600-699)
	ErrCodeRiskLimitExceeded ErrorCode = 600
	ErrCodeDailyLossBreached ErrorCode = 601
)
