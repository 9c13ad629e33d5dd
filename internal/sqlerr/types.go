package sqlerr

import "fmt"

// Code is the category of a database error, derived from its SQLSTATE.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	ExclusionViolation        Code = "exclusion_violation"
	StringDataRightTruncation Code = "string_data_right_truncation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	NumericValueOutOfRange    Code = "numeric_value_out_of_range"
	SerializationFailure      Code = "serialization_failure"
	DeadlockDetected          Code = "deadlock_detected"
	QueryCanceled             Code = "query_canceled"
	TooManyConnections        Code = "too_many_connections"
)

// sqlStates maps the SQLSTATE values the application distinguishes.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlStates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22001": StringDataRightTruncation,
	"22P02": InvalidTextRepresentation,
	"22003": NumericValueOutOfRange,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"57014": QueryCanceled,
	"53300": TooManyConnections,
}

// MapCode returns Other for SQLSTATEs without a dedicated category.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	return Other
}

// Severity is the severity reported by the server.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a normalized database error. The driver error stays reachable
// through Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
