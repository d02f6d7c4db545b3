package console

import (
	"context"
	"errors"
	"time"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/pkg/csvexport"
	"github.com/jacksonlee411/medcover-console/pkg/httperr"
)

// CurrentReport is the most recently generated report. It lives until the next
// successful generation.
type CurrentReport struct {
	Report types.Report
	Range  types.ReportRange
	View   viewmodels.ReportView
}

var ErrNoReport = errors.New("console: no report has been generated")

// OpenReportForm opens the report period form, defaulting to the current month.
func (a *App) OpenReportForm() viewmodels.Form {
	now := a.clock.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	f := viewmodels.ReportForm(first.Format(types.DateLayout), now.Format(types.DateLayout))
	a.openModal(formModal(f))
	return f
}

// GenerateReport fetches the billing report for [start, end] and shows its summary.
// A failure keeps the previous report and leaves the form open with the error.
func (a *App) GenerateReport(ctx context.Context, start string, end string) (viewmodels.ReportView, error) {
	form := viewmodels.ReportForm(start, end)
	rng, err := types.ParseReportRange(start, end)
	if err != nil {
		err = httperr.NewBadRequest(err.Error())
		a.openModal(formModal(form.WithError("", err.Error())))
		return viewmodels.ReportView{}, a.fail("Error generating report", err)
	}

	var report types.Report
	err = a.call(ctx, func(ctx context.Context) error {
		var err error
		report, err = a.gw.BillingReport(ctx, rng)
		return err
	})
	if err != nil {
		a.log.Error().Err(err).Str("start", start).Str("end", end).Msg("billing report failed")
		a.openModal(formModal(form.WithError("", userMessage(err))))
		return viewmodels.ReportView{}, a.fail("Error generating report", err)
	}

	view := viewmodels.NewReportView(report, rng)
	a.mu.Lock()
	a.report = &CurrentReport{Report: report, Range: rng, View: view}
	a.mu.Unlock()
	a.openModal(reportModal(view))
	return view, nil
}

// Report returns the current report, if any.
func (a *App) Report() (CurrentReport, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.report == nil {
		return CurrentReport{}, false
	}
	return *a.report, true
}

// DownloadReport encodes the current report's detail records as CSV, named after
// today's date.
func (a *App) DownloadReport() (string, []byte, error) {
	cur, ok := a.Report()
	if !ok {
		return "", nil, ErrNoReport
	}
	body, err := csvexport.Encode(cur.Report.DetailedRecords)
	if err != nil {
		return "", nil, err
	}
	return csvexport.FileName(a.clock.Now()), body, nil
}
