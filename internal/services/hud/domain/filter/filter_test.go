package filter

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
)

type named struct {
	name string
}

func nameOf(n named) string { return n.name }

func entries(names ...string) []named {
	out := make([]named, 0, len(names))
	for _, name := range names {
		out = append(out, named{name: name})
	}
	return out
}

func names(in []named) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.name)
	}
	return out
}

type memoryPersister struct {
	mu      sync.Mutex
	records map[string]Record
	saveErr error
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{records: map[string]Record{}}
}

func (p *memoryPersister) LoadFilters(context.Context) ([]Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Record, 0, len(p.records))
	for _, record := range p.records {
		out = append(out, record)
	}
	return out, nil
}

func (p *memoryPersister) SaveFilter(_ context.Context, record Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.records[record.ConsumerID+"/"+record.CategoryID] = record
	return nil
}

func (p *memoryPersister) DeleteFilter(_ context.Context, consumerID, categoryID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.records, consumerID+"/"+categoryID)
	return nil
}

func TestApplyPassThroughWithoutConfiguration(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	scope := store.Scope("user-1")
	for _, category := range []string{"skills", "feats", "unknown", ""} {
		got := Apply[named](scope, category, entries("Acrobatics", "", "Bluff"), nameOf)
		if want := []string{"Acrobatics", "Bluff"}; !reflect.DeepEqual(names(got), want) {
			t.Fatalf("Apply(%q) = %v, want %v", category, names(got), want)
		}
	}
	if got := Apply[named](nil, "skills", entries("A", "B"), nameOf); len(got) != 2 {
		t.Fatalf("Apply with nil reader = %v, want pass-through", names(got))
	}
}

func TestApplyAllowBlockSymmetry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	all := []string{"Acrobatics", "Bluff", "Climb", "Diplomacy"}
	configured := []string{"Bluff", "Diplomacy", "Fly"}

	for _, tc := range []struct {
		mode Mode
		want []string
	}{
		{mode: ModeAllow, want: []string{"Bluff", "Diplomacy"}},
		{mode: ModeBlock, want: []string{"Acrobatics", "Climb"}},
	} {
		store := NewStore(nil)
		if _, err := store.SetFilter(ctx, "user-1", "skills", tc.mode, configured); err != nil {
			t.Fatalf("set filter: %v", err)
		}
		got := names(Apply[named](store.Scope("user-1"), "skills", entries(all...), nameOf))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s mode = %v, want %v", tc.mode, got, tc.want)
		}

		other := names(Apply[named](store.Scope("user-2"), "skills", entries(all...), nameOf))
		if !reflect.DeepEqual(other, all) {
			t.Fatalf("other consumer = %v, want pass-through", other)
		}
	}
}

type countingReader struct {
	config Config
	calls  int
}

func (r *countingReader) Config(string) (Config, bool) {
	r.calls++
	return r.config, true
}

func TestApplyReadsConfigOnce(t *testing.T) {
	reader := &countingReader{config: Config{Mode: ModeBlock, Names: []string{"Bluff"}}}
	got := names(Apply[named](reader, "skills", entries("Acrobatics", "Bluff", "Climb"), nameOf))
	if want := []string{"Acrobatics", "Climb"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Apply = %v, want %v", got, want)
	}
	if reader.calls != 1 {
		t.Fatalf("Config calls = %d, want 1", reader.calls)
	}
}

func TestScopeConfigSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)
	if _, err := store.SetFilter(ctx, "user-1", "skills", ModeBlock, []string{"Bluff"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	config, ok := store.Scope("user-1").Config("skills")
	if !ok || config.Mode != ModeBlock || !reflect.DeepEqual(config.Names, []string{"Bluff"}) {
		t.Fatalf("Config = %+v, %v", config, ok)
	}
	config.Names[0] = "Climb"
	if again, _ := store.Scope("user-1").Config("skills"); again.Names[0] != "Bluff" {
		t.Fatalf("Config shares names with the store: %v", again.Names)
	}
	if _, ok := store.Scope("user-2").Config("skills"); ok {
		t.Fatal("Config for unknown consumer reported ok")
	}
}

func TestApplyDropsEmptyNamesInEveryMode(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)
	if _, err := store.SetFilter(ctx, "user-1", "feats", ModeBlock, []string{"Power Attack"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	got := names(Apply[named](store.Scope("user-1"), "feats", entries("", "Dodge", "Power Attack"), nameOf))
	if !reflect.DeepEqual(got, []string{"Dodge"}) {
		t.Fatalf("Apply = %v, want [Dodge]", got)
	}
}

func TestSetFilterValidates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	tests := []struct {
		consumer string
		category string
		mode     Mode
		code     apperrors.Code
	}{
		{consumer: "", category: "skills", mode: ModeAllow, code: apperrors.CodeFilterEmptyConsumer},
		{consumer: "user", category: " ", mode: ModeAllow, code: apperrors.CodeFilterEmptyCategory},
		{consumer: "user", category: "skills", mode: "maybe", code: apperrors.CodeFilterInvalidMode},
	}
	for _, tc := range tests {
		_, err := store.SetFilter(ctx, tc.consumer, tc.category, tc.mode, nil)
		if !errors.Is(err, apperrors.New(tc.code, "")) {
			t.Fatalf("SetFilter(%q, %q, %q) error = %v, want %s", tc.consumer, tc.category, tc.mode, err, tc.code)
		}
	}
}

func TestSetFilterNormalizesNames(t *testing.T) {
	store := NewStore(nil)
	record, err := store.SetFilter(context.Background(), " user ", " skills ", ModeAllow, []string{" Bluff ", "", "Bluff", "Climb"})
	if err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if record.ConsumerID != "user" || record.CategoryID != "skills" {
		t.Fatalf("record key = %q/%q", record.ConsumerID, record.CategoryID)
	}
	if !reflect.DeepEqual(record.Config.Names, []string{"Bluff", "Climb"}) {
		t.Fatalf("names = %v", record.Config.Names)
	}
	if record.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt")
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{"": ModeAllow, "allow": ModeAllow, "Blocklist": ModeBlock, "block": ModeBlock} {
		got, err := ParseMode(input)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseMode("deny-ish"); !errors.Is(err, apperrors.New(apperrors.CodeFilterInvalidMode, "")) {
		t.Fatalf("ParseMode(invalid) error = %v", err)
	}
}

func TestWriteThroughAndLoad(t *testing.T) {
	ctx := context.Background()
	persister := newMemoryPersister()

	store := NewStore(persister)
	if _, err := store.SetFilter(ctx, "user-1", "skills", ModeBlock, []string{"Bluff"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if _, err := store.SetFilter(ctx, "user-1", "feats", ModeAllow, []string{"Dodge"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if err := store.ClearFilter(ctx, "user-1", "feats"); err != nil {
		t.Fatalf("clear filter: %v", err)
	}

	restored := NewStore(persister)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	scope := restored.Scope("user-1")
	if !scope.IsBlocklist("skills") {
		t.Fatal("expected restored block list for skills")
	}
	if got := scope.FilteredNames("skills"); !reflect.DeepEqual(got, []string{"Bluff"}) {
		t.Fatalf("restored names = %v", got)
	}
	if got := scope.FilteredNames("feats"); got != nil {
		t.Fatalf("cleared category names = %v, want nil", got)
	}
}

func TestSetFilterKeepsMemoryWhenPersistFails(t *testing.T) {
	persister := newMemoryPersister()
	persister.saveErr = errors.New("disk full")
	store := NewStore(persister)

	if _, err := store.SetFilter(context.Background(), "user-1", "skills", ModeAllow, []string{"Bluff"}); err == nil {
		t.Fatal("expected save error")
	}
	if _, ok := store.Get("user-1", "skills"); ok {
		t.Fatal("expected failed write to leave no configuration")
	}
}

func TestClearUnknownFilterSucceeds(t *testing.T) {
	store := NewStore(nil)
	if err := store.ClearFilter(context.Background(), "user-1", "skills"); err != nil {
		t.Fatalf("clear unknown filter: %v", err)
	}
}

func TestSuggestionsIgnoreEmptyLists(t *testing.T) {
	store := NewStore(nil)
	scope := store.Scope("user-1")

	scope.SetSuggestions("skills", []Suggestion{{ID: "acr", Value: "Acrobatics"}})
	scope.SetSuggestions("skills", nil)
	if got := store.Suggestions("user-1", "skills"); len(got) != 1 || got[0].Value != "Acrobatics" {
		t.Fatalf("suggestions = %v, want preserved list", got)
	}

	scope.SetSuggestions("skills", []Suggestion{{ID: "blf", Value: "Bluff"}})
	if got := store.Suggestions("user-1", "skills"); len(got) != 1 || got[0].Value != "Bluff" {
		t.Fatalf("suggestions = %v, want replaced list", got)
	}
}

func TestRecordsAreSorted(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)
	for _, k := range [][2]string{{"b", "skills"}, {"a", "spells"}, {"a", "feats"}} {
		if _, err := store.SetFilter(ctx, k[0], k[1], ModeAllow, []string{"x"}); err != nil {
			t.Fatalf("set filter: %v", err)
		}
	}
	var got []string
	for _, record := range store.Records() {
		got = append(got, record.ConsumerID+"/"+record.CategoryID)
	}
	if !sort.StringsAreSorted(got) || len(got) != 3 {
		t.Fatalf("records = %v, want sorted", got)
	}
}

func TestConcurrentReadsAndEdits(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = store.SetFilter(ctx, "user-1", "skills", ModeBlock, []string{"Bluff"})
		}()
		go func() {
			defer wg.Done()
			scope := store.Scope("user-1")
			_ = Apply[named](scope, "skills", entries("Bluff", "Climb"), nameOf)
			scope.SetSuggestions("skills", []Suggestion{{ID: "blf", Value: "Bluff"}})
		}()
	}
	wg.Wait()
	if !store.Scope("user-1").IsBlocklist("skills") {
		t.Fatal("expected block list after concurrent edits")
	}
}
