package hud

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// BuildActionListRequest asks for the action list of one token, or of the
// controlled tokens when Multiple is set.
type BuildActionListRequest struct {
	System     string             `json:"system"`
	Version    string             `json:"version,omitempty"`
	ConsumerID string             `json:"consumer_id,omitempty"`
	Locale     string             `json:"locale,omitempty"`
	Token      *host.Token        `json:"token,omitempty"`
	Multiple   bool               `json:"multiple,omitempty"`
	Scene      host.Scene         `json:"scene"`
	Settings   *settings.Override `json:"settings,omitempty"`
}

// BuildActionListResponse carries the built list.
type BuildActionListResponse struct {
	ActionList *catalog.ActionList `json:"action_list"`
	Locale     string              `json:"locale"`
	Sequence   uint64              `json:"sequence"`
	Stale      bool                `json:"stale,omitempty"`
	Violations []string            `json:"violations,omitempty"`
}

// DecodeActionRequest carries an action token.
type DecodeActionRequest struct {
	Value  string `json:"value"`
	Locale string `json:"locale,omitempty"`
}

// DecodeActionResponse is a decoded action token.
type DecodeActionResponse struct {
	Kind    string   `json:"kind"`
	TokenID string   `json:"token_id"`
	RefID   string   `json:"ref_id"`
	Extra   []string `json:"extra,omitempty"`
}

// UpdateFilterRequest replaces a consumer's filter for one category.
type UpdateFilterRequest struct {
	ConsumerID string   `json:"consumer_id,omitempty"`
	CategoryID string   `json:"category_id"`
	Mode       string   `json:"mode,omitempty"`
	Names      []string `json:"names,omitempty"`
}

// FilterKeyRequest names one consumer's filter for one category.
type FilterKeyRequest struct {
	ConsumerID string `json:"consumer_id,omitempty"`
	CategoryID string `json:"category_id"`
}

// FilterView is a filter configuration as seen by editors.
type FilterView struct {
	ConsumerID  string              `json:"consumer_id"`
	CategoryID  string              `json:"category_id"`
	Configured  bool                `json:"configured"`
	Mode        string              `json:"mode,omitempty"`
	Names       []string            `json:"names"`
	UpdatedAt   string              `json:"updated_at,omitempty"`
	Suggestions []filter.Suggestion `json:"suggestions,omitempty"`
}

// FilterResponse wraps one filter view.
type FilterResponse struct {
	Filter FilterView `json:"filter"`
}

// ClearFilterResponse acknowledges a cleared filter.
type ClearFilterResponse struct {
	ConsumerID string `json:"consumer_id"`
	CategoryID string `json:"category_id"`
}

// ListFiltersRequest lists stored filters. Filter is an AIP-160 expression
// over consumer_id, category_id and mode.
type ListFiltersRequest struct {
	Filter    string `json:"filter,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// ListFiltersResponse is one page of stored filters.
type ListFiltersResponse struct {
	Filters       []FilterView `json:"filters"`
	NextPageToken string       `json:"next_page_token,omitempty"`
}

func filterView(record filter.Record, configured bool, suggestions []filter.Suggestion) FilterView {
	view := FilterView{
		ConsumerID:  record.ConsumerID,
		CategoryID:  record.CategoryID,
		Configured:  configured,
		Names:       record.Config.Names,
		Suggestions: suggestions,
	}
	if view.Names == nil {
		view.Names = []string{}
	}
	if configured {
		view.Mode = string(record.Config.Mode)
	}
	if !record.UpdatedAt.IsZero() {
		view.UpdatedAt = record.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

// Encode converts a payload into a Struct message.
func Encode(payload any) (*structpb.Struct, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("convert payload: %w", err)
	}
	return out, nil
}

// Decode converts a Struct message into a payload.
func Decode(in *structpb.Struct, payload any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("convert payload: %w", err)
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}
