// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Encoding errors
	CodeDecodeInvalidToken        Code = "DECODE_INVALID_TOKEN"
	CodeEncodingUnsafeIdentifier  Code = "ENCODING_UNSAFE_IDENTIFIER"
	CodeEncodingMissingIdentifier Code = "ENCODING_MISSING_IDENTIFIER"

	// Dispatch errors
	CodeUnknownGameSystem        Code = "UNKNOWN_GAME_SYSTEM"
	CodeCatalogContractViolation Code = "CATALOG_CONTRACT_VIOLATION"

	// Filter errors
	CodeFilterInvalidMode   Code = "FILTER_INVALID_MODE"
	CodeFilterEmptyCategory Code = "FILTER_EMPTY_CATEGORY"
	CodeFilterEmptyConsumer Code = "FILTER_EMPTY_CONSUMER"
	CodeFilterInvalidQuery  Code = "FILTER_INVALID_QUERY"

	// Request errors
	CodeRequestInvalidPayload Code = "REQUEST_INVALID_PAYLOAD"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeDecodeInvalidToken,
		CodeEncodingUnsafeIdentifier,
		CodeEncodingMissingIdentifier,
		CodeUnknownGameSystem,
		CodeFilterInvalidMode,
		CodeFilterEmptyCategory,
		CodeFilterEmptyConsumer,
		CodeFilterInvalidQuery,
		CodeRequestInvalidPayload:
		return codes.InvalidArgument

	// FailedPrecondition - an adapter produced a catalog that breaks its invariants
	case CodeCatalogContractViolation:
		return codes.FailedPrecondition

	default:
		return codes.Internal
	}
}
