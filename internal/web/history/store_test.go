package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/predictor/dto"
	"github.com/radieske/match-predictor/internal/web/storage"
	"github.com/radieske/match-predictor/internal/web/view"
)

type recordingSink struct{ ops []view.Op }

func (r *recordingSink) Push(_ string, ops ...view.Op) { r.ops = append(r.ops, ops...) }

func (r *recordingSink) lastHistory(t *testing.T) view.History {
	t.Helper()
	for i := len(r.ops) - 1; i >= 0; i-- {
		if r.ops[i].Kind == view.KindHistory {
			return r.ops[i].Payload.(view.History)
		}
	}
	t.Fatal("no history op pushed")
	return view.History{}
}

func newStore() (*Store, *storage.Memory, *recordingSink) {
	kv := storage.NewMemory()
	sink := &recordingSink{}
	return NewStore(NewKVRepository(kv), logo.NewResolver(nil, nil), sink, nil), kv, sink
}

func rec(i int) Record {
	return Record{
		HomeTeam:      fmt.Sprintf("Home %d", i),
		AwayTeam:      fmt.Sprintf("Away %d", i),
		Result:        HomeWin,
		ExpectedScore: "1.0 - 0.0",
		Timestamp:     "2024-01-01T00:00:00.000Z",
	}
}

func TestAddBoundsToTenNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _, sink := newStore()

	for i := 0; i < 11; i++ {
		if err := s.Add(ctx, "sid", rec(i)); err != nil {
			t.Fatalf("Add(%d) unexpected error: %v", i, err)
		}
	}

	list, err := s.GetAll(ctx, "sid")
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(list) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(list), MaxEntries)
	}
	if list[0].HomeTeam != "Home 10" {
		t.Fatalf("newest = %q, want Home 10", list[0].HomeTeam)
	}
	if list[9].HomeTeam != "Home 1" {
		t.Fatalf("oldest kept = %q, want Home 1 (Home 0 evicted)", list[9].HomeTeam)
	}

	h := sink.lastHistory(t)
	if h.Empty || len(h.Items) != MaxEntries || h.Items[0].Index != 0 || h.Items[0].VS != "vs" {
		t.Fatalf("unexpected rendered history %+v", h)
	}
	if h.Items[0].HomeLogo.Kind != logo.KindBadge || h.Items[0].HomeLogo.Glyph != "H" {
		t.Fatalf("unexpected logo %+v", h.Items[0].HomeLogo)
	}
}

func TestClearRendersPlaceholder(t *testing.T) {
	ctx := context.Background()
	s, kv, sink := newStore()

	if err := s.Add(ctx, "sid", rec(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx, "sid"); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}

	if _, err := kv.Get(ctx, "session:sid:predictionHistory"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("key should be removed, got err=%v", err)
	}
	list, err := s.GetAll(ctx, "sid")
	if err != nil || len(list) != 0 {
		t.Fatalf("GetAll() = %v, %v", list, err)
	}

	h := sink.lastHistory(t)
	if !h.Empty || h.Placeholder != view.EmptyHistoryMessage {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestCorruptHistoryTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newStore()

	_ = kv.Set(ctx, "session:sid:predictionHistory", "{not json")

	if _, err := NewKVRepository(kv).Load(ctx, "sid"); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("repository Load err = %v, want ErrCorrupt", err)
	}

	list, err := s.GetAll(ctx, "sid")
	if err != nil || len(list) != 0 {
		t.Fatalf("GetAll() = %v, %v; want empty", list, err)
	}

	if err := s.Add(ctx, "sid", rec(1)); err != nil {
		t.Fatalf("Add() over corrupt value: %v", err)
	}
	list, _ = s.GetAll(ctx, "sid")
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
}

func TestResultClassesPerOutcome(t *testing.T) {
	s, _, _ := newStore()

	h := s.Build(context.Background(), []Record{
		{HomeTeam: "a", AwayTeam: "b", Result: HomeWin},
		{HomeTeam: "a", AwayTeam: "b", Result: AwayWin},
		{HomeTeam: "a", AwayTeam: "b", Result: Draw},
	})
	want := []string{"result-home-win", "result-away-win", "result-draw"}
	for i, w := range want {
		if h.Items[i].ResultClass != w {
			t.Fatalf("item %d class = %q, want %q", i, h.Items[i].ResultClass, w)
		}
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore()
	_ = s.Add(ctx, "sid", rec(1))
	_ = s.Add(ctx, "sid", rec(2))

	r, err := s.Get(ctx, "sid", 1)
	if err != nil || r.HomeTeam != "Home 1" {
		t.Fatalf("Get(1) = %+v, %v", r, err)
	}
	if _, err := s.Get(ctx, "sid", 2); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("Get(2) err = %v, want ErrNoEntry", err)
	}
	if _, err := s.Get(ctx, "sid", -1); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("Get(-1) err = %v, want ErrNoEntry", err)
	}
}

func TestLookupFollowsTimestampWhenIndexShifted(t *testing.T) {
	ctx := context.Background()
	s, _, sink := newStore()

	older := rec(1)
	older.Timestamp = "2024-01-01T00:00:01.000Z"
	newer := rec(2)
	newer.Timestamp = "2024-01-01T00:00:02.000Z"
	_ = s.Add(ctx, "sid", older)
	_ = s.Add(ctx, "sid", newer)

	// a aba viu [newer, older] e clicou na linha 1 (older)
	seen := sink.lastHistory(t).Items[1]
	if seen.Timestamp != older.Timestamp {
		t.Fatalf("rendered timestamp = %q", seen.Timestamp)
	}

	// outra aba inseriu um item no topo; o índice 1 agora é newer
	other := rec(3)
	other.Timestamp = "2024-01-01T00:00:03.000Z"
	_ = s.Add(ctx, "sid", other)

	tests := []struct {
		name      string
		index     int
		timestamp string
		want      string
		err       error
	}{
		{name: "shifted row", index: seen.Index, timestamp: seen.Timestamp, want: "Home 1"},
		{name: "index matches", index: 0, timestamp: other.Timestamp, want: "Home 3"},
		{name: "index only", index: 1, want: "Home 2"},
		{name: "row dropped", index: 1, timestamp: "2023-12-31T23:59:59.000Z", err: ErrNoEntry},
		{name: "out of range without timestamp", index: 5, err: ErrNoEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Lookup(ctx, "sid", tt.index, tt.timestamp)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil || r.HomeTeam != tt.want {
				t.Fatalf("Lookup() = %+v, %v, want %s", r, err, tt.want)
			}
		})
	}
}

func TestSessionLocksAreReleased(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore()
	for i := 0; i < 20; i++ {
		_ = s.Add(ctx, fmt.Sprintf("sid-%d", i), rec(i))
	}
	_ = s.Clear(ctx, "sid-0")

	if n := s.heldLocks(); n != 0 {
		t.Fatalf("heldLocks() = %d, want 0", n)
	}
}

func TestNewRecordTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.FixedZone("BRT", -3*3600))
	r := NewRecord(dto.PredictionResponse{PredictedResult: "Draw", ExpectedScore: "1.2 - 1.1"}, "a", "b", at)

	if r.Timestamp != "2024-03-05T17:07:09.123Z" {
		t.Fatalf("Timestamp = %q", r.Timestamp)
	}
	if r.Result != Draw || r.ExpectedScore != "1.2 - 1.1" {
		t.Fatalf("unexpected record %+v", r)
	}
}

type downRepo struct{ Repository }

func (downRepo) Load(context.Context, string) ([]Record, error) { return nil, errors.New("redis down") }

func TestAddDoesNotOverwriteOnBackendError(t *testing.T) {
	s := NewStore(downRepo{}, nil, nil, nil)
	if err := s.Add(context.Background(), "sid", rec(1)); err == nil {
		t.Fatal("expected backend error")
	}
}
