// Package engine runs action list builds: it resolves the game-system
// adapter, prepares the per-build context, checks the catalog contracts of
// the result and tracks build ordering per consumer and token.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
	i18ncatalog "github.com/louisbranch/actionhud/internal/platform/i18n/catalog"
	hudotel "github.com/louisbranch/actionhud/internal/platform/otel"
	"github.com/louisbranch/actionhud/internal/platform/timeouts"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/encoding"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Request asks for one action list.
type Request struct {
	System     string
	Version    string
	ConsumerID string
	Locale     string
	// Token is the selected piece. It is ignored when Multiple is set.
	Token    *host.Token
	Multiple bool
	Scene    host.Scene
	Settings *settings.Override
}

// Result is a finished build.
type Result struct {
	List     *catalog.ActionList
	System   systems.GameSystem
	Locale   string
	Sequence uint64
	// Stale is set when a newer build for the same consumer and token
	// finished successfully before this one.
	Stale bool
	// Violations lists contract violations removed from List.
	Violations []catalog.Violation
}

// Config wires an Engine.
type Config struct {
	Registry *systems.Registry
	Filters  *filter.Store
	Settings settings.Source
	// Bundle defaults to the embedded translation bundle.
	Bundle        *i18ncatalog.Bundle
	DefaultLocale string
	// StrictContracts fails builds whose catalog breaks uniqueness instead
	// of de-duplicating them.
	StrictContracts bool
	Codec           encoding.Codec
	Logf            func(format string, args ...any)
}

// Engine builds action lists. It is safe for concurrent use.
type Engine struct {
	registry *systems.Registry
	filters  *filter.Store
	settings settings.Source
	bundle   *i18ncatalog.Bundle
	locale   string
	strict   bool
	codec    encoding.Codec
	logf     func(format string, args ...any)

	sequence atomic.Uint64
	mu       sync.Mutex
	latest   map[buildKey]buildSlot
}

type buildSlot struct {
	finished uint64
	inflight int
}

type buildKey struct {
	consumerID string
	tokenID    string
}

// New validates cfg and returns an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, errors.New("adapter registry is required")
	}
	if cfg.Filters == nil {
		cfg.Filters = filter.NewStore(nil)
	}
	if cfg.Settings == nil {
		cfg.Settings = settings.EnvSource{}
	}
	if cfg.Bundle == nil {
		cfg.Bundle = i18ncatalog.Default()
	}
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		cfg.DefaultLocale = i18ncatalog.BaseLocale
	}
	if cfg.Codec.Delimiter == "" {
		cfg.Codec = encoding.Default
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Engine{
		registry: cfg.Registry,
		filters:  cfg.Filters,
		settings: cfg.Settings,
		bundle:   cfg.Bundle,
		locale:   cfg.DefaultLocale,
		strict:   cfg.StrictContracts,
		codec:    cfg.Codec,
		logf:     cfg.Logf,
		latest:   map[buildKey]buildSlot{},
	}, nil
}

// Filters returns the filter store builds read from.
func (e *Engine) Filters() *filter.Store {
	return e.filters
}

// Codec returns the token codec builds encode with.
func (e *Engine) Codec() encoding.Codec {
	return e.codec
}

// Decode parses an action token produced by a build.
func (e *Engine) Decode(token string) (encoding.Reference, error) {
	return e.codec.Decode(token)
}

// Build produces the action list for req. A request without a token, or
// whose token has no actor, yields an empty list.
func (e *Engine) Build(ctx context.Context, req Request) (Result, error) {
	system, err := systems.ParseGameSystem(req.System)
	if err != nil {
		return Result{}, err
	}
	adapter, err := e.registry.Get(system, req.Version)
	if err != nil {
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeUnknownGameSystem,
			fmt.Sprintf("resolve adapter %s %q: %v", system, req.Version, err),
			map[string]string{"System": strings.TrimSpace(req.System + " " + req.Version)},
			err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeouts.Build)
		defer cancel()
	}

	consumerID := strings.TrimSpace(req.ConsumerID)
	ctx, span := hudotel.Tracer().Start(ctx, "hud.build")
	defer span.End()
	span.SetAttributes(
		attribute.String("hud.system", system.String()),
		attribute.String("hud.consumer_id", consumerID),
		attribute.Bool("hud.multiple", req.Multiple),
	)

	key := buildKey{consumerID: consumerID, tokenID: tokenKey(req)}
	sequence := e.begin(key)

	result, err := e.run(ctx, adapter, consumerID, req)
	if err != nil {
		e.finish(key, sequence, false)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	result.System = system
	result.Sequence = sequence
	result.Stale = e.finish(key, sequence, true)
	result.List.Sequence = sequence
	result.List.Stale = result.Stale
	span.SetAttributes(
		attribute.Int("hud.category_count", len(result.List.Entries)),
		attribute.Bool("hud.stale", result.Stale),
	)
	return result, nil
}

func (e *Engine) run(ctx context.Context, adapter systems.Adapter, consumerID string, req Request) (Result, error) {
	loaded, err := e.settings.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load settings: %w", err)
	}

	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = e.locale
	}
	translator := e.bundle.Translator(locale)

	bc := &build.Context{
		Translator: translator,
		Settings:   req.Settings.Apply(loaded),
		Scene:      req.Scene,
		Codec:      e.codec,
		Logf:       e.logf,
	}
	if consumerID != "" {
		bc.Filter = e.filters.Scope(consumerID)
	}

	token := req.Token
	if req.Multiple {
		token = nil
	}
	list, err := adapter.BuildActionList(ctx, bc, systems.Request{Token: token, Multiple: req.Multiple})
	if err != nil {
		return Result{}, err
	}
	if list == nil {
		list = catalog.NewActionList()
	}

	result := Result{List: list, Locale: translator.Locale()}
	violations := catalog.Check(list)
	if len(violations) == 0 {
		return result, nil
	}
	if e.strict {
		return Result{}, apperrors.WithMetadata(apperrors.CodeCatalogContractViolation,
			fmt.Sprintf("build %s: %d contract violations, first %s", adapter.ID(), len(violations), violations[0]),
			map[string]string{"System": adapter.ID().String()})
	}
	result.Violations = catalog.Dedupe(list)
	for _, violation := range result.Violations {
		e.logf("catalog contract violation system=%s consumer=%s violation=%s", adapter.ID(), consumerID, violation)
	}
	return result, nil
}

func tokenKey(req Request) string {
	if req.Multiple {
		return encoding.MultiTokenID
	}
	if req.Token == nil {
		return ""
	}
	return req.Token.ID
}

// begin stamps a new build for key.
func (e *Engine) begin(key buildKey) uint64 {
	sequence := e.sequence.Add(1)
	e.mu.Lock()
	slot := e.latest[key]
	slot.inflight++
	e.latest[key] = slot
	e.mu.Unlock()
	return sequence
}

// finish reports whether a newer build for key already finished with a
// list. Failed builds release their slot without superseding older ones.
func (e *Engine) finish(key buildKey, sequence uint64, succeeded bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	slot := e.latest[key]
	stale := slot.finished > sequence
	if succeeded && sequence > slot.finished {
		slot.finished = sequence
	}
	slot.inflight--
	if slot.inflight <= 0 {
		delete(e.latest, key)
	} else {
		e.latest[key] = slot
	}
	return stale
}
