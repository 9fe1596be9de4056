package demonlord

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/louisbranch/actionhud/internal/platform/i18n/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/build"
	hudcatalog "github.com/louisbranch/actionhud/internal/services/hud/domain/catalog"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/host"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/settings"
	"github.com/louisbranch/actionhud/internal/services/hud/domain/systems"
)

func newBuildContext(store *filter.Store, scene host.Scene) *build.Context {
	if store == nil {
		store = filter.NewStore(nil)
	}
	return &build.Context{
		Translator: catalog.Default().Translator("en-US"),
		Settings:   settings.Settings{ShowIcons: true},
		Filter:     store.Scope("user-1"),
		Scene:      scene,
		Logf:       func(string, ...any) {},
	}
}

func raw(value string) json.RawMessage {
	return json.RawMessage(value)
}

const attributesJSON = `{"attributes":{"strength":{"value":10},"agility":{"value":11},"intellect":{"value":9},"will":{"value":12}}}`

func character() *host.Actor {
	return &host.Actor{
		ID:     "actor-1",
		Kind:   kindCharacter,
		Name:   "Ash",
		System: raw(attributesJSON),
		Items: []host.Item{
			{ID: "w1", Kind: "weapon", Name: "Shortsword", Img: "icons/svg/mystery-man.svg"},
			{ID: "t1", Kind: "talent", Name: "Catch Your Breath", System: raw(`{"groupname":"Human","uses":{"value":0,"max":0}}`)},
			{ID: "t2", Kind: "talent", Name: "Battle Sense", System: raw(`{"groupname":"Fighter","uses":{"value":1,"max":2}}`)},
			{ID: "t3", Kind: "talent", Name: "Orphan", System: raw(`{}`)},
			{ID: "s1", Kind: "spell", Name: "zap", System: raw(`{"tradition":"Battle","rank":1,"castings":{"value":2,"max":3}}`)},
			{ID: "s2", Kind: "spell", Name: "Arc", System: raw(`{"tradition":"Battle","rank":1}`)},
			{ID: "s3", Kind: "spell", Name: "Blink", System: raw(`{"tradition":"Air","rank":0}`)},
		},
	}
}

func subNames(subs []*hudcatalog.Subcategory) []string {
	var out []string
	for _, sub := range subs {
		out = append(out, sub.Name)
	}
	return out
}

func actionNames(actions []hudcatalog.Action) []string {
	var out []string
	for _, action := range actions {
		out = append(out, action.Name)
	}
	return out
}

func TestBuildCharacterCanonicalOrder(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter()
	token := &host.Token{ID: "tok-1", Name: "Ash Token", Actor: character()}
	list, err := adapter.BuildActionList(context.Background(), newBuildContext(nil, host.Scene{}), systems.Request{Token: token})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if list.TokenID != "tok-1" || list.ActorID != "actor-1" {
		t.Fatalf("ids = %q/%q", list.TokenID, list.ActorID)
	}
	want := []string{"Challenge", "Weapons", "Talents", "Spells", "Utility"}
	if got := list.Titles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	if list.HudTitle != "" {
		t.Fatalf("hud title = %q, want empty when disabled", list.HudTitle)
	}

	challenge, _ := list.Category("Challenge")
	if got := actionNames(challenge.Subcategories[0].Actions); !reflect.DeepEqual(got, []string{"Strength", "Agility", "Intellect", "Will"}) {
		t.Fatalf("attributes = %v", got)
	}
	if got := challenge.Subcategories[0].Actions[0].EncodedValue; got != "challenge|tok-1|strength" {
		t.Fatalf("attribute token = %q", got)
	}
}

func TestShortswordAndZeroUseFeature(t *testing.T) {
	adapter := NewAdapter()
	token := &host.Token{ID: "tok-1", Actor: character()}
	list, err := adapter.BuildActionList(context.Background(), newBuildContext(nil, host.Scene{}), systems.Request{Token: token})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	weapons, ok := list.Category("Weapons")
	if !ok || weapons.ID != "weapons" {
		t.Fatalf("weapons category = %+v", weapons)
	}
	actions := weapons.Subcategories[0].Actions
	if len(actions) != 1 || actions[0].Name != "Shortsword" {
		t.Fatalf("weapons = %v, want [Shortsword]", actionNames(actions))
	}
	if actions[0].Info2 != "" || actions[0].Img != "" {
		t.Fatalf("shortsword = %+v, want no uses and no placeholder image", actions[0])
	}

	talents, _ := list.Category("Talents")
	if got := subNames(talents.Subcategories); !reflect.DeepEqual(got, []string{"Fighter", "Human"}) {
		t.Fatalf("talent groups = %v", got)
	}
	human := talents.Subcategories[1].Subcategories[0].Actions[0]
	if human.Name != "Catch Your Breath" || human.Info2 != "" {
		t.Fatalf("zero-use talent = %+v, want empty uses", human)
	}
	fighter := talents.Subcategories[0].Subcategories[0].Actions[0]
	if fighter.Info2 != "1/2" {
		t.Fatalf("talent uses = %q, want 1/2", fighter.Info2)
	}
}

func TestSpellsOrderedByRankThenName(t *testing.T) {
	adapter := NewAdapter()
	token := &host.Token{ID: "tok-1", Actor: character()}
	list, _ := adapter.BuildActionList(context.Background(), newBuildContext(nil, host.Scene{}), systems.Request{Token: token})
	spells, _ := list.Category("Spells")
	traditions := spells.Subcategories[0].Subcategories
	if got := subNames(traditions); !reflect.DeepEqual(got, []string{"Air", "Battle"}) {
		t.Fatalf("traditions = %v", got)
	}
	battle := traditions[1].Subcategories[0].Actions
	if got := actionNames(battle); !reflect.DeepEqual(got, []string{"Arc", "zap"}) {
		t.Fatalf("battle spells = %v", got)
	}
	if battle[1].Info2 != "2/3" {
		t.Fatalf("castings = %q", battle[1].Info2)
	}
}

func TestCreatureUsesCreatureTitles(t *testing.T) {
	actor := character()
	actor.Kind = kindCreature
	list, _ := NewAdapter().BuildActionList(context.Background(), newBuildContext(nil, host.Scene{}), systems.Request{Token: &host.Token{ID: "tok-2", Actor: actor}})
	want := []string{"Challenge", "Attack Options", "Special Attacks", "Spells"}
	if got := list.Titles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
}

func TestTalentsHonorFilterAndPublishSuggestions(t *testing.T) {
	store := filter.NewStore(nil)
	if _, err := store.SetFilter(context.Background(), "user-1", "talents", filter.ModeBlock, []string{"Battle Sense"}); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	token := &host.Token{ID: "tok-1", Actor: character()}
	list, _ := NewAdapter().BuildActionList(context.Background(), newBuildContext(store, host.Scene{}), systems.Request{Token: token})

	talents, _ := list.Category("Talents")
	if got := subNames(talents.Subcategories); !reflect.DeepEqual(got, []string{"Human"}) {
		t.Fatalf("talent groups = %v, want [Human]", got)
	}
	if got := len(store.Suggestions("user-1", "talents")); got != 3 {
		t.Fatalf("suggestions = %d, want 3", got)
	}
}

func TestMissingTokenOrActorYieldsEmptyList(t *testing.T) {
	adapter := NewAdapter()
	bc := newBuildContext(nil, host.Scene{})

	list, err := adapter.BuildActionList(context.Background(), bc, systems.Request{})
	if err != nil || list.TokenID != "" || len(list.Entries) != 0 {
		t.Fatalf("no token = %+v, %v", list, err)
	}
	list, err = adapter.BuildActionList(context.Background(), bc, systems.Request{Token: &host.Token{ID: "tok-9"}})
	if err != nil || list.TokenID != "" || list.ActorID != "" || len(list.Entries) != 0 {
		t.Fatalf("no actor = %+v, %v", list, err)
	}
}

func TestHudTitleWhenEnabled(t *testing.T) {
	bc := newBuildContext(nil, host.Scene{})
	bc.Settings.ShowHudTitle = true
	list, _ := NewAdapter().BuildActionList(context.Background(), bc, systems.Request{Token: &host.Token{ID: "tok-1", Name: "Ash Token", Actor: character()}})
	if list.HudTitle != "Ash Token" {
		t.Fatalf("hud title = %q", list.HudTitle)
	}
}

func TestMultipleSelection(t *testing.T) {
	t.Parallel()

	second := character()
	second.ID = "actor-2"
	scene := host.Scene{Controlled: []host.Token{
		{ID: "tok-1", Actor: character()},
		{ID: "tok-2", Actor: second},
		{ID: "tok-3", Actor: &host.Actor{ID: "vehicle", Kind: "vehicle"}},
	}}
	list, err := NewAdapter().BuildActionList(context.Background(), newBuildContext(nil, scene), systems.Request{Multiple: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if list.TokenID != "multi" || list.ActorID != "multi" {
		t.Fatalf("ids = %q/%q", list.TokenID, list.ActorID)
	}
	if got := list.Titles(); !reflect.DeepEqual(got, []string{"Challenge", "Utility"}) {
		t.Fatalf("titles = %v", got)
	}
	utility, _ := list.Category("Utility")
	if got := utility.Subcategories[0].Actions[0].EncodedValue; got != "utility|multi|rest|" {
		t.Fatalf("rest token = %q, want utility|multi|rest|", got)
	}
}

func TestMultipleSelectionWithCreatureOmitsRest(t *testing.T) {
	creature := character()
	creature.Kind = kindCreature
	scene := host.Scene{Controlled: []host.Token{
		{ID: "tok-1", Actor: character()},
		{ID: "tok-2", Actor: character()},
		{ID: "tok-3", Actor: creature},
	}}
	list, _ := NewAdapter().BuildActionList(context.Background(), newBuildContext(nil, scene), systems.Request{Multiple: true})
	if got := list.Titles(); !reflect.DeepEqual(got, []string{"Challenge"}) {
		t.Fatalf("titles = %v, want rest omitted", got)
	}
}

func TestCancelledBuildStopsBeforeFolding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAdapter().BuildActionList(ctx, newBuildContext(nil, host.Scene{}), systems.Request{Token: &host.Token{ID: "tok-1", Actor: character()}})
	if err == nil {
		t.Fatal("expected context error")
	}
}
