// Package hud exposes the action HUD engine and filter editing over gRPC.
package hud

import (
	"context"
	"fmt"
	"log"
	"strings"

	grpcmeta "github.com/louisbranch/actionhud/internal/api/grpc/metadata"
	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
	"github.com/louisbranch/actionhud/internal/platform/grpc/pagination"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/engine"
	"github.com/louisbranch/actionhud/internal/services/hud/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultListFiltersPageSize = 20
	maxListFiltersPageSize     = 100
)

// Service implements ActionHudServer on top of a build engine.
type Service struct {
	engine *engine.Engine
	store  storage.FilterStore
}

// NewService creates a service. store backs ListFilters and may be nil when
// filters are kept in memory only.
func NewService(e *engine.Engine, store storage.FilterStore) *Service {
	return &Service{engine: e, store: store}
}

var _ ActionHudServer = (*Service)(nil)

// BuildActionList builds the action list for the requested token.
func (s *Service) BuildActionList(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "build engine is not configured")
	}
	var req BuildActionListRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	if strings.TrimSpace(req.ConsumerID) == "" {
		req.ConsumerID = grpcmeta.ConsumerIDFromContext(ctx)
	}

	result, err := s.engine.Build(ctx, engine.Request{
		System:     req.System,
		Version:    req.Version,
		ConsumerID: req.ConsumerID,
		Locale:     req.Locale,
		Token:      req.Token,
		Multiple:   req.Multiple,
		Scene:      req.Scene,
		Settings:   req.Settings,
	})
	if err != nil {
		log.Printf("build action list failed system=%s consumer=%s request_id=%s err=%v",
			req.System, req.ConsumerID, grpcmeta.RequestIDFromContext(ctx), err)
		return nil, handleDomainError(err, req.Locale)
	}
	if result.Stale {
		log.Printf("stale build system=%s consumer=%s sequence=%d", result.System, req.ConsumerID, result.Sequence)
	}

	out := BuildActionListResponse{
		ActionList: result.List,
		Locale:     result.Locale,
		Sequence:   result.Sequence,
		Stale:      result.Stale,
	}
	for _, violation := range result.Violations {
		out.Violations = append(out.Violations, violation.String())
	}
	return encodeResponse(out)
}

// DecodeAction splits an action token into its reference parts.
func (s *Service) DecodeAction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.engine == nil {
		return nil, status.Error(codes.Internal, "build engine is not configured")
	}
	var req DecodeActionRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	ref, err := s.engine.Decode(req.Value)
	if err != nil {
		return nil, handleDomainError(err, req.Locale)
	}
	return encodeResponse(DecodeActionResponse{
		Kind:    ref.Kind,
		TokenID: ref.TokenID,
		RefID:   ref.RefID,
		Extra:   ref.Extra,
	})
}

// UpdateFilter replaces one category filter for a consumer.
func (s *Service) UpdateFilter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	filters, err := s.filters()
	if err != nil {
		return nil, err
	}
	var req UpdateFilterRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	consumerID := s.consumerID(ctx, req.ConsumerID)
	mode, err := filter.ParseMode(req.Mode)
	if err != nil {
		return nil, handleDomainError(err, "")
	}
	record, err := filters.SetFilter(ctx, consumerID, req.CategoryID, mode, req.Names)
	if err != nil {
		return nil, handleDomainError(err, "")
	}
	log.Printf("filter updated consumer=%s category=%s mode=%s names=%d", record.ConsumerID, record.CategoryID, record.Config.Mode, len(record.Config.Names))
	return encodeResponse(FilterResponse{
		Filter: filterView(record, true, filters.Suggestions(record.ConsumerID, record.CategoryID)),
	})
}

// ClearFilter removes one category filter for a consumer.
func (s *Service) ClearFilter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	filters, err := s.filters()
	if err != nil {
		return nil, err
	}
	var req FilterKeyRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	consumerID := s.consumerID(ctx, req.ConsumerID)
	if err := filters.ClearFilter(ctx, consumerID, req.CategoryID); err != nil {
		return nil, handleDomainError(err, "")
	}
	return encodeResponse(ClearFilterResponse{
		ConsumerID: strings.TrimSpace(consumerID),
		CategoryID: strings.TrimSpace(req.CategoryID),
	})
}

// GetFilter returns a category filter with the latest suggestions. An
// unconfigured category is reported as such rather than as an error.
func (s *Service) GetFilter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	filters, err := s.filters()
	if err != nil {
		return nil, err
	}
	var req FilterKeyRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	consumerID := strings.TrimSpace(s.consumerID(ctx, req.ConsumerID))
	categoryID := strings.TrimSpace(req.CategoryID)
	if consumerID == "" {
		return nil, handleDomainError(apperrors.New(apperrors.CodeFilterEmptyConsumer, "filter consumer is required"), "")
	}
	if categoryID == "" {
		return nil, handleDomainError(apperrors.New(apperrors.CodeFilterEmptyCategory, "filter category is required"), "")
	}

	record, ok := filters.Get(consumerID, categoryID)
	if !ok {
		record = filter.Record{ConsumerID: consumerID, CategoryID: categoryID}
	}
	return encodeResponse(FilterResponse{
		Filter: filterView(record, ok, filters.Suggestions(consumerID, categoryID)),
	})
}

// ListFilters returns a page of stored filters matching an AIP-160
// expression.
func (s *Service) ListFilters(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.store == nil {
		return nil, status.Error(codes.FailedPrecondition, "filter storage is not configured")
	}
	var req ListFiltersRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, handleDomainError(err, "")
	}
	pageSize := pagination.ClampPageSize(req.PageSize, pagination.PageSizeConfig{
		Default: defaultListFiltersPageSize,
		Max:     maxListFiltersPageSize,
	})
	if _, err := pagination.DecodeOffset(req.PageToken); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	page, err := s.store.ListFilters(ctx, req.Filter, pageSize, req.PageToken)
	if err != nil {
		return nil, handleDomainError(err, "")
	}
	out := ListFiltersResponse{
		Filters:       make([]FilterView, 0, len(page.Records)),
		NextPageToken: page.NextPageToken,
	}
	for _, record := range page.Records {
		out.Filters = append(out.Filters, filterView(record, true, nil))
	}
	return encodeResponse(out)
}

func (s *Service) filters() (*filter.Store, error) {
	if s == nil || s.engine == nil || s.engine.Filters() == nil {
		return nil, status.Error(codes.Internal, "filter store is not configured")
	}
	return s.engine.Filters(), nil
}

func (s *Service) consumerID(ctx context.Context, fromPayload string) string {
	if strings.TrimSpace(fromPayload) != "" {
		return fromPayload
	}
	return grpcmeta.ConsumerIDFromContext(ctx)
}

func decodeRequest(in *structpb.Struct, payload any) error {
	if err := Decode(in, payload); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeRequestInvalidPayload,
			fmt.Sprintf("decode request: %v", err),
			map[string]string{"Reason": err.Error()},
			err)
	}
	return nil
}

func encodeResponse(payload any) (*structpb.Struct, error) {
	out, err := Encode(payload)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func handleDomainError(err error, locale string) error {
	if strings.TrimSpace(locale) == "" {
		locale = apperrors.DefaultLocale
	}
	return apperrors.HandleError(err, locale)
}
