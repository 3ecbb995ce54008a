package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeFieldError       ErrorCode = "FIELD_ERROR"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeDuplicateNumber  ErrorCode = "DUPLICATE_NUMBER"
	ErrCodeInvalidReference ErrorCode = "INVALID_REFERENCE"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"
)

const (
	// postgres unique_violation
	pqUniqueViolation = "23505"
	// postgres class 22, data exception (numeric overflow, invalid text, ...)
	pqDataException = "22"
)

// AppError is the error type every service returns to the HTTP layer.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds the error returned when an entity lookup by id fails.
func NotFound(entity string, id uint) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s with id %d not found", entity, id), nil)
}

// FieldError wraps a malformed request body.
func FieldError(message string, err error) *AppError {
	return NewAppError(ErrCodeFieldError, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	appErr := GetAppError(err)
	if appErr == nil {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeFieldError, ErrCodeValidation, ErrCodeCapacityExceeded,
		ErrCodeDuplicateNumber, ErrCodeInvalidReference:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromDB translates an ORM error. entity and id only feed the not-found message.
// AppErrors pass through untouched so transactions can return them as is.
func FromDB(err error, entity string, id uint) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity, id)
	}
	if IsUniqueViolation(err) {
		return NewAppError(ErrCodeDuplicateNumber, fmt.Sprintf("%s with the same number already exists", entity), err)
	}
	if IsDataException(err) {
		return FieldError("field value out of range or malformed", err)
	}
	return NewAppError(ErrCodeDBError, "database error", err)
}

// IsUniqueViolation covers both the translated gorm error and a raw lib/pq error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}

// IsDataException reports a value the column type cannot hold.
func IsDataException(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code.Class()) == pqDataException
}

var (
	ErrCapacityExceeded = NewAppError(ErrCodeCapacityExceeded, "number of clients should be <= number of places", nil)
)
