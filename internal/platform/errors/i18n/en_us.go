package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeDecodeInvalidToken        = "DECODE_INVALID_TOKEN"
	CodeEncodingUnsafeIdentifier  = "ENCODING_UNSAFE_IDENTIFIER"
	CodeEncodingMissingIdentifier = "ENCODING_MISSING_IDENTIFIER"
	CodeUnknownGameSystem         = "UNKNOWN_GAME_SYSTEM"
	CodeCatalogContractViolation  = "CATALOG_CONTRACT_VIOLATION"
	CodeFilterInvalidMode         = "FILTER_INVALID_MODE"
	CodeFilterEmptyCategory       = "FILTER_EMPTY_CATEGORY"
	CodeFilterEmptyConsumer       = "FILTER_EMPTY_CONSUMER"
	CodeFilterInvalidQuery        = "FILTER_INVALID_QUERY"
	CodeRequestInvalidPayload     = "REQUEST_INVALID_PAYLOAD"
)

// Codes lists every error code that must have a base-locale message.
var Codes = []Code{
	CodeDecodeInvalidToken,
	CodeEncodingUnsafeIdentifier,
	CodeEncodingMissingIdentifier,
	CodeUnknownGameSystem,
	CodeCatalogContractViolation,
	CodeFilterInvalidMode,
	CodeFilterEmptyCategory,
	CodeFilterEmptyConsumer,
	CodeFilterInvalidQuery,
	CodeRequestInvalidPayload,
}
