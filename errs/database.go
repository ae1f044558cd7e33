package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        withKind(ErrConflict, fmt.Sprintf("%s %s", entity, ErrAlreadyExists)),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        withKind(ErrNotFound, fmt.Sprintf("%s %s", entity, ErrNotFound)),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if errors.Is(cause, gorm.ErrRecordNotFound) {
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        withKind(ErrNotFound, fmt.Sprintf("%s not found", entity)),
			Details:    details,
		}
	}
	if errors.Is(cause, gorm.ErrDuplicatedKey) {
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        withKind(ErrConflict, fmt.Sprintf("%s already exists", entity)),
			Details:    details,
			Cause:      cause,
		}
	}

	// Drivers that don't translate errors still leak their messages
	if cause != nil {
		errStr := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(errStr, "duplicate key"), strings.Contains(errStr, "unique constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        withKind(ErrConflict, fmt.Sprintf("%s already exists", entity)),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        withKind(ErrInternal, ErrDatabaseQuery.Error()),
		Details:    details,
		Cause:      cause,
	}
}
