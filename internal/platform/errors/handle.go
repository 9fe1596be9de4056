package errors

import (
	"context"
	stderrors "errors"

	"github.com/louisbranch/actionhud/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is used when a caller does not name one.
const DefaultLocale = "en-US"

// HandleError converts err into a gRPC status error. Domain errors carry a
// message localized for locale; context errors keep their gRPC meaning; an
// error that already is a status passes through.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if domainErr, ok := As(err); ok {
		catalog := i18n.GetCatalog(locale)
		return domainErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(domainErr.Code), domainErr.Metadata))
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}
