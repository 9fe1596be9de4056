package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHandleErrorLocalizesDomainErrors(t *testing.T) {
	t.Parallel()

	err := HandleError(fmt.Errorf("build: %w", WithMetadata(CodeUnknownGameSystem, "system dnd5e", map[string]string{"System": "dnd5e"})), "")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("HandleError = %v, want status", err)
	}
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %s, want %s", st.Code(), codes.InvalidArgument)
	}
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		if message, ok := detail.(*errdetails.LocalizedMessage); ok {
			localized = message
		}
	}
	if localized == nil {
		t.Fatal("expected localized message detail")
	}
	if want := `Game system "dnd5e" is not supported`; localized.GetMessage() != want {
		t.Fatalf("localized = %q, want %q", localized.GetMessage(), want)
	}
	if localized.GetLocale() != DefaultLocale {
		t.Fatalf("locale = %q, want %q", localized.GetLocale(), DefaultLocale)
	}
}

func TestHandleErrorNonDomainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want codes.Code
	}{
		{err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{err: fmt.Errorf("fold: %w", context.Canceled), want: codes.Canceled},
		{err: status.Error(codes.NotFound, "missing"), want: codes.NotFound},
		{err: stderrors.New("boom"), want: codes.Internal},
	}
	for _, tc := range tests {
		if got := status.Code(HandleError(tc.err, "en-US")); got != tc.want {
			t.Fatalf("HandleError(%v) code = %s, want %s", tc.err, got, tc.want)
		}
	}
	if HandleError(nil, "") != nil {
		t.Fatal("HandleError(nil) should be nil")
	}
}
