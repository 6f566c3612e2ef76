package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a specific failure.
type ErrorCode string

const (
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrNoWriteAccess    ErrorCode = "NO_WRITE_ACCESS"
	ErrDirectoryFailed  ErrorCode = "DIRECTORY_FAILED"
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCopyFailed       ErrorCode = "COPY_FAILED"
	ErrDBConnectFailed  ErrorCode = "DB_CONNECT_FAILED"
	ErrSchemaMissing    ErrorCode = "SCHEMA_MISSING"
	ErrPrepareFailed    ErrorCode = "PREPARE_FAILED"
	ErrInsertFailed     ErrorCode = "INSERT_FAILED"
	ErrQueryFailed      ErrorCode = "QUERY_FAILED"
	ErrInternal         ErrorCode = "INTERNAL"
)

// Kind groups error codes into the closed set callers branch on.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindFilesystem   Kind = "filesystem"
	KindDatabase     Kind = "database"
	KindInternal     Kind = "internal"
)

var codeKinds = map[ErrorCode]Kind{
	ErrInvalidInput:     KindInvalidInput,
	ErrNoWriteAccess:    KindFilesystem,
	ErrDirectoryFailed:  KindFilesystem,
	ErrTemplateNotFound: KindFilesystem,
	ErrCopyFailed:       KindFilesystem,
	ErrDBConnectFailed:  KindDatabase,
	ErrSchemaMissing:    KindDatabase,
	ErrPrepareFailed:    KindDatabase,
	ErrInsertFailed:     KindDatabase,
	ErrQueryFailed:      KindDatabase,
	ErrInternal:         KindInternal,
}

// C1Error represents a structured error with code, message, and details.
type C1Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *C1Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *C1Error) Unwrap() error {
	return e.Err
}

// Kind returns the error kind for the code.
func (e *C1Error) Kind() Kind {
	if k, ok := codeKinds[e.Code]; ok {
		return k
	}
	return KindInternal
}

// Status returns the HTTP status used when the error is served.
func (e *C1Error) Status() int {
	switch e.Code {
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrDBConnectFailed, ErrTemplateNotFound:
		return http.StatusNotFound
	case ErrSchemaMissing:
		return http.StatusUnprocessableEntity
	case ErrNoWriteAccess:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// NewInvalidInput creates an error for rejected caller input.
func NewInvalidInput(msg string) *C1Error {
	return &C1Error{
		Code:    ErrInvalidInput,
		Message: msg,
	}
}

// NewNoWriteAccess creates an error for a location that cannot be written.
func NewNoWriteAccess(location string, err error) *C1Error {
	return &C1Error{
		Code:    ErrNoWriteAccess,
		Message: fmt.Sprintf("no write access to %s", location),
		Details: map[string]any{"location": location},
		Err:     err,
	}
}

// NewDirectoryFailed creates an error for a directory that could not be created.
func NewDirectoryFailed(path string, err error) *C1Error {
	return &C1Error{
		Code:    ErrDirectoryFailed,
		Message: fmt.Sprintf("failed to create directory %s", path),
		Details: map[string]any{"path": path},
		Err:     err,
	}
}

// NewTemplateNotFound creates an error listing every location searched.
func NewTemplateNotFound(name string, searched []string) *C1Error {
	return &C1Error{
		Code:    ErrTemplateNotFound,
		Message: fmt.Sprintf("template %s not found in %d search locations", name, len(searched)),
		Details: map[string]any{"template": name, "searched": searched},
	}
}

// NewCopyFailed creates an error for a failed template copy.
func NewCopyFailed(src, dst string, err error) *C1Error {
	return &C1Error{
		Code:    ErrCopyFailed,
		Message: fmt.Sprintf("failed to copy %s to %s", src, dst),
		Details: map[string]any{"source": src, "destination": dst},
		Err:     err,
	}
}

// NewDBConnectFailed creates an error for a database that could not be opened.
func NewDBConnectFailed(path string, err error) *C1Error {
	return &C1Error{
		Code:    ErrDBConnectFailed,
		Message: fmt.Sprintf("cannot connect to database %s", path),
		Details: map[string]any{"path": path},
		Err:     err,
	}
}

// NewSchemaMissing creates an error for a missing table.
func NewSchemaMissing(table string) *C1Error {
	return &C1Error{
		Code:    ErrSchemaMissing,
		Message: fmt.Sprintf("table %s does not exist", table),
		Details: map[string]any{"table": table},
	}
}

// NewPrepareFailed creates an error for a statement that failed to prepare.
func NewPrepareFailed(err error) *C1Error {
	return &C1Error{
		Code:    ErrPrepareFailed,
		Message: "failed to prepare statement",
		Err:     err,
	}
}

// NewInsertFailed creates an error for a row that failed to insert.
// Rows inserted before it are not rolled back.
func NewInsertFailed(key int64, relativePath string, inserted int, err error) *C1Error {
	return &C1Error{
		Code:    ErrInsertFailed,
		Message: fmt.Sprintf("failed to insert %s (key %d)", relativePath, key),
		Details: map[string]any{"key": key, "relative_path": relativePath, "inserted": inserted},
		Err:     err,
	}
}

// NewQueryFailed creates an error for a failed read query.
func NewQueryFailed(err error) *C1Error {
	return &C1Error{
		Code:    ErrQueryFailed,
		Message: "query failed",
		Err:     err,
	}
}

// NewInternal creates an error for unexpected internal errors.
func NewInternal(err error) *C1Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &C1Error{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a C1Error with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *C1Error
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}

// KindOf returns the kind of err. Errors outside this package are internal.
func KindOf(err error) Kind {
	var cErr *C1Error
	if stderrors.As(err, &cErr) {
		return cErr.Kind()
	}
	return KindInternal
}
