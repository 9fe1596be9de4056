// Package encoding turns action references into the opaque tokens the HUD
// attaches to each rendered action, and back.
//
// A token is the reference parts joined by a delimiter:
//
//	kind|tokenID|refID[|extra...]
//
// Parts are validated rather than escaped. A part that contains the
// delimiter or a character unsafe inside an HTML attribute value is
// rejected, so every token that Encode produces decodes to the same parts.
package encoding

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
)

// DefaultDelimiter separates token parts.
const DefaultDelimiter = "|"

// MultiTokenID stands in for the token id when a list was built for several
// selected pieces.
const MultiTokenID = "multi"

// Reference is a decoded action token.
type Reference struct {
	Kind    string   `json:"kind"`
	TokenID string   `json:"tokenId"`
	RefID   string   `json:"refId"`
	Extra   []string `json:"extra,omitempty"`
}

// Codec encodes and decodes references with one delimiter.
type Codec struct {
	Delimiter string
}

// Default is the codec used by every adapter.
var Default = Codec{Delimiter: DefaultDelimiter}

// Encode joins the reference parts with the default delimiter.
func Encode(kind, tokenID, refID string, extra ...string) (string, error) {
	return Default.Encode(kind, tokenID, refID, extra...)
}

// Decode splits a token produced by Encode.
func Decode(token string) (Reference, error) {
	return Default.Decode(token)
}

func (c Codec) delimiter() string {
	if c.Delimiter == "" {
		return DefaultDelimiter
	}
	return c.Delimiter
}

// Encode joins kind, tokenID, refID and any extra parts. The three mandatory
// parts must be non-empty; extra parts may be empty.
func (c Codec) Encode(kind, tokenID, refID string, extra ...string) (string, error) {
	delimiter := c.delimiter()
	parts := make([]string, 0, 3+len(extra))
	for _, part := range []struct {
		name  string
		value string
	}{
		{name: "kind", value: kind},
		{name: "tokenId", value: tokenID},
		{name: "refId", value: refID},
	} {
		if part.value == "" {
			return "", apperrors.WithMetadata(apperrors.CodeEncodingMissingIdentifier,
				fmt.Sprintf("encode action: %s is required", part.name),
				map[string]string{"Part": part.name})
		}
		if err := c.validatePart(part.value); err != nil {
			return "", err
		}
		parts = append(parts, part.value)
	}
	for _, part := range extra {
		if err := c.validatePart(part); err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, delimiter), nil
}

// Decode splits token into its reference parts.
func (c Codec) Decode(token string) (Reference, error) {
	parts := strings.Split(token, c.delimiter())
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Reference{}, &DecodeError{Token: token}
	}
	ref := Reference{Kind: parts[0], TokenID: parts[1], RefID: parts[2]}
	if len(parts) > 3 {
		ref.Extra = append([]string(nil), parts[3:]...)
	}
	return ref, nil
}

func (c Codec) validatePart(part string) error {
	if strings.Contains(part, c.delimiter()) {
		return unsafePart(part, "contains the delimiter")
	}
	for _, r := range part {
		switch {
		case r < 0x20 || r == 0x7f:
			return unsafePart(part, "contains a control character")
		case strings.ContainsRune(`"'<>&`, r):
			return unsafePart(part, fmt.Sprintf("contains %q", r))
		}
	}
	return nil
}

func unsafePart(part, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeEncodingUnsafeIdentifier,
		fmt.Sprintf("encode action: part %q %s", part, reason),
		map[string]string{"Part": part})
}

// DecodeError reports a token that does not carry a valid reference.
type DecodeError struct {
	Token string
}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode action token %q: expected kind, token id and reference id", e.Token)
}

// Unwrap exposes the domain error so callers can match on its code.
func (e *DecodeError) Unwrap() error {
	return apperrors.WithMetadata(apperrors.CodeDecodeInvalidToken, e.Error(), map[string]string{"Token": e.Token})
}
