package nettrace

import (
	"testing"
	"time"
)

func TestRowsKeepWallOrderAndDetails(t *testing.T) {
	t0 := time.Unix(0, 0)
	tl := &Timeline{
		Start:    t0,
		End:      t0.Add(50 * time.Millisecond),
		Duration: 50 * time.Millisecond,
		Phases: []Phase{
			{ID: PhaseDNS, Start: t0, End: t0.Add(5 * time.Millisecond)},
			{ID: PhaseConnect, Start: t0.Add(5 * time.Millisecond), End: t0.Add(20 * time.Millisecond), Meta: PhaseMeta{Addr: "10.0.0.1:80"}},
			{ID: PhaseRequest, Start: t0.Add(20 * time.Millisecond), End: t0.Add(21 * time.Millisecond), Meta: PhaseMeta{Reused: true}},
			{ID: PhaseWait, Start: t0.Add(21 * time.Millisecond), End: t0.Add(50 * time.Millisecond), Err: "incomplete"},
		},
	}

	rows := tl.Rows()
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Label != "DNS lookup" || rows[0].Span != 5*time.Millisecond {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Detail != "10.0.0.1:80" {
		t.Fatalf("expected addr detail, got %q", rows[1].Detail)
	}
	if rows[2].Detail != "reused" {
		t.Fatalf("expected reused detail, got %q", rows[2].Detail)
	}
	if rows[3].Detail != "incomplete" {
		t.Fatalf("expected error folded into detail, got %q", rows[3].Detail)
	}
}

func TestRowsNilTimeline(t *testing.T) {
	var tl *Timeline
	if tl.Rows() != nil {
		t.Fatal("expected nil rows for nil timeline")
	}
}
