package nettrace

import "time"

// Row is one line of the rendered timing table.
type Row struct {
	Label  string
	Span   time.Duration
	Detail string
}

// Rows flattens a timeline into display rows, keeping wall order.
func (t *Timeline) Rows() []Row {
	if t == nil {
		return nil
	}
	rows := make([]Row, 0, len(t.Phases))
	for _, p := range t.Phases {
		detail := p.Meta.Addr
		if p.Meta.Reused {
			detail = joinDetail(detail, "reused")
		}
		if p.Err != "" {
			detail = joinDetail(detail, p.Err)
		}
		rows = append(rows, Row{Label: p.ID.Label(), Span: p.Span(), Detail: detail})
	}
	return rows
}

// Aggregate sums phase durations by id. Repeated phases, such as retried
// connects, fold into one bucket.
func Aggregate(t *Timeline) map[PhaseID]time.Duration {
	if t == nil {
		return nil
	}
	totals := make(map[PhaseID]time.Duration, len(t.Phases))
	for _, p := range t.Phases {
		totals[p.ID] += p.Span()
	}
	return totals
}

func joinDetail(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + ", " + extra
}
