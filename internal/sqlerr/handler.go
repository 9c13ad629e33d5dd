package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/happy/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueKeyPattern  = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	checkNamePattern  = regexp.MustCompile(`^[^_]+_(.+)_check$`)
	englishTitleCaser = cases.Title(language.English)
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError normalizes a server error reported by pgx.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds "<ENTITY>_<ACTION>" codes such as
// ORPHANAGE_ALREADY_EXISTS from the table name.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataRightTruncation, InvalidTextRepresentation, NumericValueOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			return fmt.Sprintf("A %s with this %s already exists", entityName, humanizeText(column))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		if fieldName := humanizeText(columnOf(sqlErr)); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case StringDataRightTruncation, InvalidTextRepresentation, NumericValueOutOfRange:
		return "One or more values are not valid"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers the base of an "_id" column (foreign keys), then
// the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		return humanizeText(strings.TrimSuffix(strings.ToLower(columnName), "_id"))
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "opening_hours" into "Opening Hours".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return englishTitleCaser.String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation understands "unique_<table>_<column>" and
// the Postgres default "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// columnOf returns the offending column, falling back to the Postgres
// default check constraint name "<table>_<column>_check".
func columnOf(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}
	if matches := checkNamePattern.FindStringSubmatch(sqlErr.ConstraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError values are returned unchanged.
//   - Constraint and data errors become 400s; NOT NULL and CHECK failures
//     carry the column as a field error.
//   - No rows becomes a 404.
//   - Anything else is a 500 that keeps err as its cause.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, UniqueViolation, StringDataRightTruncation,
			InvalidTextRepresentation, NumericValueOutOfRange:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case NotNullViolation, CheckViolation:
			var fields errs.ValidationErrors
			if column := strings.ToLower(columnOf(sqlErr)); column != "" {
				fields = errs.ValidationErrors{column: {userMessage}}
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fields)

		default:
			return errs.NewInternalError(err)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalError(err)
}
