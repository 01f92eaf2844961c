package firestore

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestWrapErrorClassification(t *testing.T) {
	cases := []struct {
		name        string
		code        codes.Code
		notFound    bool
		conflict    bool
		unavailable bool
	}{
		{"not found", codes.NotFound, true, false, false},
		{"already exists", codes.AlreadyExists, false, true, false},
		{"aborted", codes.Aborted, false, true, false},
		{"unavailable", codes.Unavailable, false, false, true},
		{"internal", codes.Internal, false, false, true},
		{"unknown", codes.Unknown, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := WrapError("orders.create", status.Error(tc.code, "boom"))
			var e *Error
			if !errors.As(wrapped, &e) {
				t.Fatalf("expected *Error, got %T", wrapped)
			}
			if e.IsNotFound() != tc.notFound || e.IsConflict() != tc.conflict || e.IsUnavailable() != tc.unavailable {
				t.Fatalf("classification = %v/%v/%v", e.IsNotFound(), e.IsConflict(), e.IsUnavailable())
			}
		})
	}
}

func TestWrapErrorPassesThroughCancellation(t *testing.T) {
	if err := WrapError("orders.create", context.Canceled); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if err := WrapError("orders.create", status.Error(codes.DeadlineExceeded, "late")); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestWrapErrorStampsOpOnce(t *testing.T) {
	inner := WrapError("", status.Error(codes.NotFound, "missing"))
	outer := WrapError("orders.find", inner)

	var e *Error
	if !errors.As(outer, &e) {
		t.Fatalf("expected *Error, got %T", outer)
	}
	if e.op != "orders.find" {
		t.Fatalf("op = %q", e.op)
	}
	if WrapError("x", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
