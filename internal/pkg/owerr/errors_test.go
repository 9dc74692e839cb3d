package owerr

import "testing"

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestInvalidViolations(t *testing.T) {
	e := NewInvalidViolations([]string{"ageMin must be >= 0"})
	if e.ErrorCode != CodeInvalidRequest {
		t.Errorf("Expected code %s, got %s", CodeInvalidRequest, e.ErrorCode)
	}
	if e.Extras == nil {
		t.Error("Expected violations to be attached as extras")
	}
	if ErrInvalidReq.Extras != nil {
		t.Error("Expected ErrInvalidReq to stay untouched")
	}
}
