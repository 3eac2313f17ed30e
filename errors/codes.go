package errors

// ErrorCode identifies an application error category in responses and logs.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1005

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = 2001
	ErrorCode_AUTH_USER_NOT_FOUND        ErrorCode = 2002
	ErrorCode_AUTH_OAUTH_FAILED          ErrorCode = 2003
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN ErrorCode = 2004

	// Analysis
	ErrorCode_ANALYSIS_FAILED         ErrorCode = 3000
	ErrorCode_ANALYSIS_INVALID_RESULT ErrorCode = 3001
	ErrorCode_TRANSCRIPTION_FAILED    ErrorCode = 3002

	// Integration
	ErrorCode_STORAGE_FAILED      ErrorCode = 4000
	ErrorCode_EXTERNAL_API_FAILED ErrorCode = 4001

	// Database
	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = 5000
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 5001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 5002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_USER_NOT_FOUND:        "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_OAUTH_FAILED:          "AUTH_OAUTH_FAILED",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN: "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_ANALYSIS_FAILED:            "ANALYSIS_FAILED",
	ErrorCode_ANALYSIS_INVALID_RESULT:    "ANALYSIS_INVALID_RESULT",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
	ErrorCode_STORAGE_FAILED:             "STORAGE_FAILED",
	ErrorCode_EXTERNAL_API_FAILED:        "EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the error code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
