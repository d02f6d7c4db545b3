package console

import "github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"

// Modal is either closed (zero value) or open with exactly one body.
type Modal struct {
	Open    bool
	Title   string
	Form    *viewmodels.Form
	Detail  *viewmodels.Detail
	Confirm *viewmodels.Confirmation
	Report  *viewmodels.ReportView
}

func formModal(f viewmodels.Form) Modal {
	return Modal{Open: true, Title: f.Title, Form: &f}
}

func detailModal(d viewmodels.Detail) Modal {
	return Modal{Open: true, Title: d.Title, Detail: &d}
}

func confirmModal(c viewmodels.Confirmation) Modal {
	return Modal{Open: true, Title: c.Title, Confirm: &c}
}

func reportModal(r viewmodels.ReportView) Modal {
	return Modal{Open: true, Title: r.Title, Report: &r}
}

func (a *App) Modal() Modal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modal
}

func (a *App) openModal(m Modal) {
	a.mu.Lock()
	a.modal = m
	a.mu.Unlock()
}

func (a *App) CloseModal() {
	a.openModal(Modal{})
}
