// Package pagination normalizes list request paging for gRPC handlers.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// EncodeOffset renders an offset page token. Zero offsets have no token.
func EncodeOffset(offset int) string {
	if offset <= 0 {
		return ""
	}
	return "o" + strconv.Itoa(offset)
}

// DecodeOffset parses a page token produced by EncodeOffset.
func DecodeOffset(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	raw, ok := strings.CutPrefix(token, "o")
	if !ok {
		return 0, fmt.Errorf("invalid page_token: %s", token)
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid page_token: %s", token)
	}
	return offset, nil
}
