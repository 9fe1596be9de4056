package errors

import (
	stderrors "errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain names the ErrorInfo domain attached to HUD statuses.
const Domain = "github.com/louisbranch/actionhud"

// Error carries a code clients can switch on and the template data used to
// localize it. Message is for logs only.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so callers can compare against
// &Error{Code: c}.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

// New returns an error with no template data.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose localized message renders metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// WrapWithMetadata is WithMetadata keeping cause in the chain.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if !stderrors.As(err, &target) {
		return nil, false
	}
	return target, true
}

// ToGRPCStatus maps e to a status whose message is e.Message. The code and
// metadata travel as ErrorInfo and userMessage as a LocalizedMessage.
func (e *Error) ToGRPCStatus(locale, userMessage string) error {
	base := status.New(e.Code.GRPCCode(), e.Message)
	detailed, err := base.WithDetails(
		&errdetails.ErrorInfo{Reason: string(e.Code), Domain: Domain, Metadata: e.Metadata},
		&errdetails.LocalizedMessage{Locale: locale, Message: userMessage},
	)
	if err != nil {
		return base.Err()
	}
	return detailed.Err()
}
