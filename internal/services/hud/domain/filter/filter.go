package filter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
)

// Mode selects how configured names are applied.
type Mode string

const (
	// ModeAllow keeps only the configured names.
	ModeAllow Mode = "allow"
	// ModeBlock hides the configured names.
	ModeBlock Mode = "block"
)

// ParseMode accepts allow, block and their list spellings. An empty mode
// defaults to allow.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "allow", "allowlist":
		return ModeAllow, nil
	case "block", "blocklist":
		return ModeBlock, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeFilterInvalidMode,
			fmt.Sprintf("invalid filter mode %q", value),
			map[string]string{"Mode": value})
	}
}

// Config is the filter configured for one category.
type Config struct {
	Mode  Mode
	Names []string
}

// Suggestion is a candidate name offered in a filter editor.
type Suggestion struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Record is a persisted filter configuration.
type Record struct {
	ConsumerID string
	CategoryID string
	Config     Config
	UpdatedAt  time.Time
}

// Persister stores filter configurations across restarts.
type Persister interface {
	LoadFilters(ctx context.Context) ([]Record, error)
	SaveFilter(ctx context.Context, record Record) error
	DeleteFilter(ctx context.Context, consumerID, categoryID string) error
}

// Reader is the read side of a consumer's filters used by builders.
// Config returns mode and names from one snapshot.
type Reader interface {
	Config(categoryID string) (Config, bool)
}

type key struct {
	consumerID string
	categoryID string
}

// Store holds filter configurations and suggestions for every consumer.
type Store struct {
	mu          sync.RWMutex
	persister   Persister
	configs     map[key]Record
	suggestions map[key][]Suggestion
	now         func() time.Time
}

// NewStore returns an empty store. A nil persister keeps configurations in
// memory only.
func NewStore(persister Persister) *Store {
	return &Store{
		persister:   persister,
		configs:     map[key]Record{},
		suggestions: map[key][]Suggestion{},
		now:         time.Now,
	}
}

// Load replaces the in-memory configurations with the persisted ones.
func (s *Store) Load(ctx context.Context) error {
	if s == nil || s.persister == nil {
		return nil
	}
	records, err := s.persister.LoadFilters(ctx)
	if err != nil {
		return fmt.Errorf("load filters: %w", err)
	}
	configs := make(map[key]Record, len(records))
	for _, record := range records {
		record.Config.Names = normalizeNames(record.Config.Names)
		configs[key{consumerID: record.ConsumerID, categoryID: record.CategoryID}] = record
	}
	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()
	return nil
}

// SetFilter replaces the configuration for one consumer and category.
// Setting an empty name list keeps the record but filters nothing.
func (s *Store) SetFilter(ctx context.Context, consumerID, categoryID string, mode Mode, names []string) (Record, error) {
	if s == nil {
		return Record{}, fmt.Errorf("filter store is not configured")
	}
	k, err := validateKey(consumerID, categoryID)
	if err != nil {
		return Record{}, err
	}
	if mode != ModeAllow && mode != ModeBlock {
		return Record{}, apperrors.WithMetadata(apperrors.CodeFilterInvalidMode,
			fmt.Sprintf("invalid filter mode %q", mode),
			map[string]string{"Mode": string(mode)})
	}
	record := Record{
		ConsumerID: k.consumerID,
		CategoryID: k.categoryID,
		Config:     Config{Mode: mode, Names: normalizeNames(names)},
		UpdatedAt:  s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.SaveFilter(ctx, record); err != nil {
			return Record{}, fmt.Errorf("save filter: %w", err)
		}
	}
	s.configs[k] = record
	return record, nil
}

// ClearFilter removes the configuration for one consumer and category.
// Clearing a category with no configuration succeeds.
func (s *Store) ClearFilter(ctx context.Context, consumerID, categoryID string) error {
	if s == nil {
		return fmt.Errorf("filter store is not configured")
	}
	k, err := validateKey(consumerID, categoryID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persister != nil {
		if err := s.persister.DeleteFilter(ctx, k.consumerID, k.categoryID); err != nil {
			return fmt.Errorf("delete filter: %w", err)
		}
	}
	delete(s.configs, k)
	return nil
}

// Get returns the configuration for one consumer and category.
func (s *Store) Get(consumerID, categoryID string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.configs[key{consumerID: consumerID, categoryID: categoryID}]
	if !ok {
		return Record{}, false
	}
	record.Config.Names = append([]string(nil), record.Config.Names...)
	return record, true
}

// Suggestions returns the latest suggestions published for one consumer and
// category.
func (s *Store) Suggestions(consumerID, categoryID string) []Suggestion {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Suggestion(nil), s.suggestions[key{consumerID: consumerID, categoryID: categoryID}]...)
}

// Records lists every configuration ordered by consumer then category.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	out := make([]Record, 0, len(s.configs))
	for _, record := range s.configs {
		record.Config.Names = append([]string(nil), record.Config.Names...)
		out = append(out, record)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConsumerID != out[j].ConsumerID {
			return out[i].ConsumerID < out[j].ConsumerID
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// Scope binds the store to one consumer for the duration of a build.
func (s *Store) Scope(consumerID string) *Scope {
	return &Scope{store: s, consumerID: strings.TrimSpace(consumerID)}
}

func (s *Store) setSuggestions(consumerID, categoryID string, suggestions []Suggestion) {
	if s == nil || len(suggestions) == 0 {
		return
	}
	s.mu.Lock()
	s.suggestions[key{consumerID: consumerID, categoryID: categoryID}] = append([]Suggestion(nil), suggestions...)
	s.mu.Unlock()
}

// Scope is one consumer's view of the store.
type Scope struct {
	store      *Store
	consumerID string
}

// ConsumerID returns the bound consumer.
func (s *Scope) ConsumerID() string {
	if s == nil {
		return ""
	}
	return s.consumerID
}

// SetSuggestions replaces the suggestions for categoryID. Empty lists are
// ignored so a build that found nothing keeps the previous suggestions.
func (s *Scope) SetSuggestions(categoryID string, suggestions []Suggestion) {
	if s == nil {
		return
	}
	s.store.setSuggestions(s.consumerID, categoryID, suggestions)
}

// Config returns the configuration for categoryID.
func (s *Scope) Config(categoryID string) (Config, bool) {
	if s == nil {
		return Config{}, false
	}
	record, ok := s.store.Get(s.consumerID, categoryID)
	if !ok {
		return Config{}, false
	}
	return record.Config, true
}

// FilteredNames returns the configured names for categoryID.
func (s *Scope) FilteredNames(categoryID string) []string {
	config, _ := s.Config(categoryID)
	return config.Names
}

// IsBlocklist reports whether categoryID hides its configured names.
func (s *Scope) IsBlocklist(categoryID string) bool {
	config, ok := s.Config(categoryID)
	return ok && config.Mode == ModeBlock
}

// Apply filters entries for categoryID. Entries whose name is empty are
// always dropped. With no configured names the remaining entries pass
// through in order; otherwise allow mode keeps entries named in the
// configuration and block mode keeps the rest.
func Apply[T any](reader Reader, categoryID string, entries []T, nameOf func(T) string) []T {
	var config Config
	if reader != nil {
		config, _ = reader.Config(categoryID)
	}
	blocklist := config.Mode == ModeBlock
	set := make(map[string]struct{}, len(config.Names))
	for _, name := range config.Names {
		set[name] = struct{}{}
	}

	out := make([]T, 0, len(entries))
	for _, entry := range entries {
		name := nameOf(entry)
		if name == "" {
			continue
		}
		if len(set) > 0 {
			_, listed := set[name]
			if listed == blocklist {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

func validateKey(consumerID, categoryID string) (key, error) {
	consumerID = strings.TrimSpace(consumerID)
	categoryID = strings.TrimSpace(categoryID)
	if consumerID == "" {
		return key{}, apperrors.New(apperrors.CodeFilterEmptyConsumer, "filter consumer is required")
	}
	if categoryID == "" {
		return key{}, apperrors.New(apperrors.CodeFilterEmptyCategory, "filter category is required")
	}
	return key{consumerID: consumerID, categoryID: categoryID}, nil
}

func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
