package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/louisbranch/actionhud/internal/platform/errors"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveLoadFilterRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 2, 18, 30, 0, 0, time.UTC)
	input := filter.Record{
		ConsumerID: "user-1",
		CategoryID: "skills",
		Config:     filter.Config{Mode: filter.ModeBlock, Names: []string{"Bluff", "Climb"}},
		UpdatedAt:  now,
	}
	if err := store.SaveFilter(ctx, input); err != nil {
		t.Fatalf("save filter: %v", err)
	}

	records, err := store.LoadFilters(ctx)
	if err != nil {
		t.Fatalf("load filters: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if !reflect.DeepEqual(records[0], input) {
		t.Fatalf("record = %+v, want %+v", records[0], input)
	}
}

func TestSaveFilterReplacesExisting(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	record := filter.Record{ConsumerID: "user-1", CategoryID: "feats", Config: filter.Config{Mode: filter.ModeAllow, Names: []string{"Dodge"}}}
	if err := store.SaveFilter(ctx, record); err != nil {
		t.Fatalf("save filter: %v", err)
	}
	record.Config = filter.Config{Mode: filter.ModeBlock}
	if err := store.SaveFilter(ctx, record); err != nil {
		t.Fatalf("replace filter: %v", err)
	}

	records, err := store.LoadFilters(ctx)
	if err != nil {
		t.Fatalf("load filters: %v", err)
	}
	if len(records) != 1 || records[0].Config.Mode != filter.ModeBlock || len(records[0].Config.Names) != 0 {
		t.Fatalf("records = %+v, want one replaced block record", records)
	}
}

func TestSaveFilterRequiresKey(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.SaveFilter(context.Background(), filter.Record{CategoryID: "skills"}); err == nil {
		t.Fatal("expected consumer id error")
	}
	if err := store.SaveFilter(context.Background(), filter.Record{ConsumerID: "user-1"}); err == nil {
		t.Fatal("expected category id error")
	}
}

func TestDeleteFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.DeleteFilter(ctx, "user-1", "skills"); err != nil {
		t.Fatalf("delete missing filter: %v", err)
	}
	saveRecords(t, store, [2]string{"user-1", "skills"}, [2]string{"user-1", "feats"})
	if err := store.DeleteFilter(ctx, "user-1", "skills"); err != nil {
		t.Fatalf("delete filter: %v", err)
	}
	records, err := store.LoadFilters(ctx)
	if err != nil {
		t.Fatalf("load filters: %v", err)
	}
	if len(records) != 1 || records[0].CategoryID != "feats" {
		t.Fatalf("records = %+v, want only feats", records)
	}
}

func TestListFiltersAppliesExpressionAndPages(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	saveRecords(t, store,
		[2]string{"user-2", "skills"},
		[2]string{"user-1", "spells"},
		[2]string{"user-1", "feats"},
		[2]string{"user-1", "skills"},
	)

	first, err := store.ListFilters(ctx, `consumer_id = "user-1"`, 2, "")
	if err != nil {
		t.Fatalf("list filters: %v", err)
	}
	if got := keys(first.Records); !reflect.DeepEqual(got, []string{"user-1/feats", "user-1/skills"}) {
		t.Fatalf("first page = %v", got)
	}
	if first.NextPageToken == "" {
		t.Fatal("expected next page token")
	}

	second, err := store.ListFilters(ctx, `consumer_id = "user-1"`, 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if got := keys(second.Records); !reflect.DeepEqual(got, []string{"user-1/spells"}) {
		t.Fatalf("second page = %v", got)
	}
	if second.NextPageToken != "" {
		t.Fatalf("next page token = %q, want empty", second.NextPageToken)
	}

	all, err := store.ListFilters(ctx, "", 10, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Records) != 4 {
		t.Fatalf("all records = %d, want 4", len(all.Records))
	}

	blocks, err := store.ListFilters(ctx, `category_id = "skills" AND mode = "allow"`, 10, "")
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if got := keys(blocks.Records); !reflect.DeepEqual(got, []string{"user-1/skills", "user-2/skills"}) {
		t.Fatalf("skills = %v", got)
	}
}

func TestListFiltersRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.ListFilters(ctx, `owner = "x"`, 10, ""); !errors.Is(err, apperrors.New(apperrors.CodeFilterInvalidQuery, "")) {
		t.Fatalf("unknown field error = %v", err)
	}
	if _, err := store.ListFilters(ctx, "", 10, "bogus"); err == nil {
		t.Fatal("expected page token error")
	}
	if _, err := store.ListFilters(ctx, "", 0, ""); err == nil {
		t.Fatal("expected page size error")
	}
}

func TestFilterStoreRestoresThroughPersister(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hud.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	filters := filter.NewStore(first)
	if _, err := filters.SetFilter(ctx, "user-1", "skills", filter.ModeBlock, []string{"Bluff"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })
	restored := filter.NewStore(second)
	if err := restored.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !restored.Scope("user-1").IsBlocklist("skills") {
		t.Fatal("expected restored block list")
	}
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.LoadFilters(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("load error = %v, want context.Canceled", err)
	}
	if err := store.SaveFilter(ctx, filter.Record{ConsumerID: "a", CategoryID: "b"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("save error = %v, want context.Canceled", err)
	}
}

func saveRecords(t *testing.T, store *Store, pairs ...[2]string) {
	t.Helper()
	for _, pair := range pairs {
		record := filter.Record{
			ConsumerID: pair[0],
			CategoryID: pair[1],
			Config:     filter.Config{Mode: filter.ModeAllow, Names: []string{"x"}},
		}
		if err := store.SaveFilter(context.Background(), record); err != nil {
			t.Fatalf("save filter %v: %v", pair, err)
		}
	}
}

func keys(records []filter.Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.ConsumerID+"/"+record.CategoryID)
	}
	return out
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "hud.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
