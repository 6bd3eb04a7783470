package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/radieske/match-predictor/internal/web/storage"
	"github.com/radieske/match-predictor/internal/web/view"
)

type recordingSink struct{ ops []view.Op }

func (r *recordingSink) Push(_ string, ops ...view.Op) { r.ops = append(r.ops, ops...) }

func TestDefaultsToLight(t *testing.T) {
	t.Parallel()

	s := NewStore(NewKVRepository(storage.NewMemory()), nil, nil)
	if got := s.Get(context.Background(), "sid"); got != Light {
		t.Fatalf("Get() = %q, want light", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Theme{"dark": Dark, "light": Light, "": Light, "blue": Light} {
		if got := Parse(in); got != want {
			t.Fatalf("Parse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	kv := storage.NewMemory()
	sink := &recordingSink{}
	s := NewStore(NewKVRepository(kv), sink, nil)

	first, err := s.Toggle(ctx, "sid")
	if err != nil {
		t.Fatalf("Toggle() unexpected error: %v", err)
	}
	if first != Dark || first.Icon() != "fas fa-sun" {
		t.Fatalf("after first toggle got %q / %q", first, first.Icon())
	}
	if v, _ := kv.Get(ctx, "session:sid:theme"); v != "dark" {
		t.Fatalf("persisted %q, want dark", v)
	}

	second, err := s.Toggle(ctx, "sid")
	if err != nil {
		t.Fatalf("Toggle() unexpected error: %v", err)
	}
	if second != Light || second.Icon() != "fas fa-moon" {
		t.Fatalf("after second toggle got %q / %q", second, second.Icon())
	}
	if v, _ := kv.Get(ctx, "session:sid:theme"); v != "light" {
		t.Fatalf("persisted %q, want light", v)
	}

	last := sink.ops[len(sink.ops)-2:]
	if last[0].Name != "data-theme" || last[0].Value != "light" || last[1].Value != "fas fa-moon" {
		t.Fatalf("unexpected ops %+v", last)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := NewStore(NewKVRepository(storage.NewMemory()), nil, nil)
	if _, err := s.Toggle(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(ctx, "b"); got != Light {
		t.Fatalf("session b got %q", got)
	}
}

type failingRepo struct{}

func (failingRepo) Load(context.Context, string) (Theme, error) { return Light, errors.New("down") }
func (failingRepo) Save(context.Context, string, Theme) error   { return errors.New("down") }

func TestToggleSaveError(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	s := NewStore(failingRepo{}, sink, nil)
	if _, err := s.Toggle(context.Background(), "sid"); err == nil {
		t.Fatal("expected error")
	}
	if len(sink.ops) != 0 {
		t.Fatalf("no ops expected on failure, got %+v", sink.ops)
	}
}
