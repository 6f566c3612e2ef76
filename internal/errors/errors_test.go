package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestC1Error_Error(t *testing.T) {
	err := &C1Error{
		Code:    ErrSchemaMissing,
		Message: "table ZPATHLOCATION does not exist",
	}

	expected := "SCHEMA_MISSING: table ZPATHLOCATION does not exist"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestC1Error_ErrorWithCause(t *testing.T) {
	err := NewDirectoryFailed("/tmp/x", fs.ErrPermission)

	expected := "DIRECTORY_FAILED: failed to create directory /tmp/x: permission denied"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !stderrors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped cause")
	}
}

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput("name is required")

	if err.Code != ErrInvalidInput {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidInput)
	}
	if err.Kind() != KindInvalidInput {
		t.Errorf("Kind = %q, want %q", err.Kind(), KindInvalidInput)
	}
	if err.Message != "name is required" {
		t.Errorf("Message = %q, want %q", err.Message, "name is required")
	}
}

func TestNewTemplateNotFound(t *testing.T) {
	searched := []string{"/opt/a", "/opt/b"}
	err := NewTemplateNotFound("main.db", searched)

	if err.Code != ErrTemplateNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrTemplateNotFound)
	}
	if err.Kind() != KindFilesystem {
		t.Errorf("Kind = %q, want %q", err.Kind(), KindFilesystem)
	}
	if err.Details["template"] != "main.db" {
		t.Errorf("Details[template] = %v, want main.db", err.Details["template"])
	}
	got, ok := err.Details["searched"].([]string)
	if !ok || len(got) != 2 {
		t.Errorf("Details[searched] = %v, want %v", err.Details["searched"], searched)
	}
}

func TestNewInsertFailed(t *testing.T) {
	err := NewInsertFailed(7, "Capture/02", 1, fmt.Errorf("constraint"))

	if err.Kind() != KindDatabase {
		t.Errorf("Kind = %q, want %q", err.Kind(), KindDatabase)
	}
	if err.Details["key"] != int64(7) {
		t.Errorf("Details[key] = %v, want 7", err.Details["key"])
	}
	if err.Details["inserted"] != 1 {
		t.Errorf("Details[inserted] = %v, want 1", err.Details["inserted"])
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		err  *C1Error
		want Kind
	}{
		{NewInvalidInput("x"), KindInvalidInput},
		{NewNoWriteAccess("/x", nil), KindFilesystem},
		{NewDirectoryFailed("/x", nil), KindFilesystem},
		{NewTemplateNotFound("main.db", nil), KindFilesystem},
		{NewCopyFailed("a", "b", nil), KindFilesystem},
		{NewDBConnectFailed("/x.db", nil), KindDatabase},
		{NewSchemaMissing("T"), KindDatabase},
		{NewPrepareFailed(nil), KindDatabase},
		{NewInsertFailed(1, "Capture/01", 0, nil), KindDatabase},
		{NewQueryFailed(nil), KindDatabase},
		{NewInternal(nil), KindInternal},
		{&C1Error{Code: "UNKNOWN"}, KindInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if got := tt.err.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("database connection failed"))
	if err.Message != "database connection failed" {
		t.Errorf("Message = %q, want %q", err.Message, "database connection failed")
	}

	errNil := NewInternal(nil)
	if errNil.Message != "internal error" {
		t.Errorf("Message = %q, want %q", errNil.Message, "internal error")
	}
}

func TestIs(t *testing.T) {
	err := NewSchemaMissing("ZPATHLOCATION")

	if !Is(err, ErrSchemaMissing) {
		t.Error("Is(err, ErrSchemaMissing) should return true")
	}
	if Is(err, ErrInvalidInput) {
		t.Error("Is(err, ErrInvalidInput) should return false")
	}

	wrapped := fmt.Errorf("patch: %w", err)
	if !Is(wrapped, ErrSchemaMissing) {
		t.Error("Is should see through wrapping")
	}

	if Is(fmt.Errorf("some error"), ErrSchemaMissing) {
		t.Error("Is(regular error, ...) should return false")
	}
	if Is(nil, ErrSchemaMissing) {
		t.Error("Is(nil, ...) should return false")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NewCopyFailed("a", "b", nil)); got != KindFilesystem {
		t.Errorf("KindOf = %q, want %q", got, KindFilesystem)
	}
	if got := KindOf(fmt.Errorf("plain")); got != KindInternal {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindInternal)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  *C1Error
		want int
	}{
		{NewInvalidInput("x"), 400},
		{NewNoWriteAccess("/x", nil), 403},
		{NewDBConnectFailed("/x.db", nil), 404},
		{NewTemplateNotFound("main.db", nil), 404},
		{NewSchemaMissing("T"), 422},
		{NewInsertFailed(1, "Capture/01", 0, nil), 500},
		{NewInternal(nil), 500},
	}

	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.want {
			t.Errorf("%s Status() = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}
