package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := InvalidInput("bad column name")
	wrapped := Wrap(base, "upload rejected")

	appErr, ok := wrapped.(*AppError)
	if !ok {
		t.Fatalf("Wrap returned %T, want *AppError", wrapped)
	}
	if appErr.Code != CodeInvalidInput {
		t.Errorf("code = %s, want %s", appErr.Code, CodeInvalidInput)
	}
	if appErr.Message != "upload rejected" {
		t.Errorf("message = %q", appErr.Message)
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error must unwrap to its cause")
	}
}

func TestWrapPlainError(t *testing.T) {
	plain := stderrors.New("disk full")
	wrapped := Wrap(plain, "ingest failed")

	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("plain errors wrap with code %s, want %s", GetCode(wrapped), CodeInternalError)
	}
	if !stderrors.Is(wrapped, plain) {
		t.Error("cause lost in wrapping")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "ignored") != nil {
		t.Error("wrapping nil must stay nil")
	}
	if Wrapf(nil, "ignored %d", 1) != nil {
		t.Error("Wrapf(nil) must stay nil")
	}
}

func TestErrorString(t *testing.T) {
	e := IngestFailed("failed to read CSV file", stderrors.New("unexpected EOF"))
	want := "failed to read CSV file: unexpected EOF"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	bare := NotFound("dataset")
	if bare.Error() != "dataset not found" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(stderrors.New("x")) != "UNKNOWN" {
		t.Error("non-app errors must report UNKNOWN")
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, stderrors.New("negative max_rows"))
	if GetCode(err) != CodeValidationError {
		t.Errorf("code = %s", GetCode(err))
	}
}
