package viewmodels

import (
	"strconv"
	"time"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

type ReportView struct {
	Title       string
	Period      string
	Generated   string
	Summary     []Item
	RecordCount int
}

func NewReportView(r types.Report, rng types.ReportRange) ReportView {
	v := ReportView{
		Title:       "Billing Report",
		Period:      rng.Start.Format(types.DateLayout) + " - " + rng.End.Format(types.DateLayout),
		RecordCount: len(r.DetailedRecords),
		Summary:     make([]Item, 0, len(r.Summary)),
	}
	if !r.GeneratedAt.IsZero() {
		v.Generated = r.GeneratedAt.UTC().Format(time.DateTime) + " UTC"
	}
	for _, row := range r.Summary {
		v.Summary = append(v.Summary, Item{
			Label: orNA(row.Status),
			Value: strconv.Itoa(row.Count) + " claims, Total: " + FormatMoney(row.TotalAmount),
		})
	}
	return v
}
