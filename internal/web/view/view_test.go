package view

import (
	"testing"

	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/predictor/dto"
)

func TestPercent(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		55:    "55%",
		0:     "0%",
		55.5:  "55.5%",
		33.33: "33.33%",
		100:   "100%",
	}
	for in, want := range tests {
		if got := Percent(in); got != want {
			t.Fatalf("Percent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestResultClass(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Home Win", "result-home-win"},
		{"Away Win", "result-away-win"},
		{"Draw", "result-draw"},
		{"anything else", "result-draw"},
		{"", "result-draw"},
	}
	for _, tt := range tests {
		if got := ResultClass(tt.in); got != tt.want {
			t.Fatalf("ResultClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	resp := dto.PredictionResponse{
		HomeWinProbability: 55,
		DrawProbability:    20,
		AwayWinProbability: 25,
		PredictedResult:    "Home Win",
		ExpectedScore:      "2-1",
	}
	r := NewResult(resp, "Arsenal", "Chelsea", logo.Badge("Arsenal"), logo.Image("Chelsea"))

	if r.PredictedResult != "Home Win" || r.ExpectedScore != "2-1" || r.ResultClass != "result-home-win" {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.Bars != (Bars{Home: "55%", Draw: "20%", Away: "25%"}) {
		t.Fatalf("unexpected bars %+v", r.Bars)
	}

	ops := r.Ops()
	wantTargets := []string{
		SelHomeName, SelAwayName, SelHomeLogo, SelAwayLogo,
		SelHomeProbability, SelDrawProbability, SelAwayProbability,
		SelPredicted, SelExpectedScore,
	}
	if len(ops) != len(wantTargets) {
		t.Fatalf("got %d ops, want %d", len(ops), len(wantTargets))
	}
	for i, target := range wantTargets {
		if ops[i].Target != target {
			t.Fatalf("op[%d].Target = %q, want %q", i, ops[i].Target, target)
		}
	}
	if ops[4].Value != "55%" || ops[7].Value != "Home Win" || ops[8].Value != "2-1" {
		t.Fatalf("unexpected text ops %+v", ops)
	}

	bars := r.BarOps()
	for i, want := range []string{"55%", "20%", "25%"} {
		if bars[i].Kind != KindStyle || bars[i].Name != "width" || bars[i].Value != want {
			t.Fatalf("bar op[%d] = %+v, want width %s", i, bars[i], want)
		}
	}
}

func TestLoading(t *testing.T) {
	t.Parallel()

	on := Loading(true)
	if b := on[0].Payload.(Button); !b.Disabled || b.Label != "Predicting..." {
		t.Fatalf("unexpected busy button %+v", b)
	}
	if on[1].Value != "block" {
		t.Fatalf("spinner display = %q", on[1].Value)
	}

	off := Loading(false)
	if b := off[0].Payload.(Button); b.Disabled || b.Label != "Predict" || b.Icon != "fas fa-magic" {
		t.Fatalf("unexpected idle button %+v", b)
	}
	if off[1].Value != "none" {
		t.Fatalf("spinner display = %q", off[1].Value)
	}
}

func TestNotificationLifecycleTargets(t *testing.T) {
	t.Parallel()

	n := NewNotification("n1", "boom")
	if n.InsertOps()[0].Target != SelBody {
		t.Fatal("notification must be inserted into the body")
	}
	for _, ops := range [][]Op{n.ShowOps(), n.FadeOps(), n.RemoveOps()} {
		if ops[0].Target != "#n1" {
			t.Fatalf("unexpected target %q", ops[0].Target)
		}
	}
}
