package ui

import "shopkeeper/internal/gateway"

// ModalView renders the modal chrome for a concrete surface. A nil view
// makes every modal operation a no-op, matching screens that ship
// without modal templates.
type ModalView interface {
	ModalOpened(title string, form *Form)
	ModalClosed()
	ReportInvalid(message string)
}

// Modal manages the shared add/edit dialog. Opening it rebinds the save
// handler, replacing whatever handler a previous Open installed, so a
// reopened modal never fires stale handlers.
type Modal struct {
	view   ModalView
	busy   busyFlag
	open   bool
	form   *Form
	onSave func()
}

// NewModal wraps a view. view may be nil.
func NewModal(view ModalView) *Modal {
	return &Modal{view: view}
}

// Open shows the modal with a fresh form and save handler. Any handler
// bound by an earlier Open is discarded.
func (m *Modal) Open(title string, form *Form, onSave func()) {
	if m.view == nil {
		return
	}
	m.form = form
	m.onSave = onSave
	m.open = true
	m.view.ModalOpened(title, form)
}

// Save runs the currently bound handler once per invocation. The
// handler decides whether to close the modal, so validation failures
// keep it open.
func (m *Modal) Save() {
	if m.view == nil || !m.open || m.onSave == nil {
		return
	}
	m.onSave()
}

// Close hides the modal and clears its form and handler.
func (m *Modal) Close() {
	if m.view == nil || !m.open {
		return
	}
	m.open = false
	m.form = nil
	m.onSave = nil
	m.view.ModalClosed()
}

// IsOpen reports whether the modal is showing.
func (m *Modal) IsOpen() bool { return m.open }

// Form returns the form currently bound to the modal, or nil.
func (m *Modal) Form() *Form { return m.form }

// ReportInvalid surfaces a validation failure without closing the modal.
func (m *Modal) ReportInvalid(message string) {
	if m.view == nil {
		return
	}
	m.view.ReportInvalid(message)
}

// SaveBusy returns the busy control gating the save button.
func (m *Modal) SaveBusy() gateway.Busy { return &m.busy }

// ConfirmModal manages the delete confirmation dialog with the same
// rebind-on-open handler discipline as Modal.
type ConfirmModal struct {
	view      ConfirmView
	busy      busyFlag
	open      bool
	onConfirm func()
}

// ConfirmView renders the confirmation dialog chrome.
type ConfirmView interface {
	ConfirmOpened(title, message string)
	ConfirmClosed()
}

// NewConfirmModal wraps a view. view may be nil.
func NewConfirmModal(view ConfirmView) *ConfirmModal {
	return &ConfirmModal{view: view}
}

// Open shows the dialog, replacing any previously bound handler.
func (m *ConfirmModal) Open(title, message string, onConfirm func()) {
	if m.view == nil {
		return
	}
	m.onConfirm = onConfirm
	m.open = true
	m.view.ConfirmOpened(title, message)
}

// Confirm runs the currently bound handler.
func (m *ConfirmModal) Confirm() {
	if m.view == nil || !m.open || m.onConfirm == nil {
		return
	}
	m.onConfirm()
}

// Close hides the dialog and clears the handler.
func (m *ConfirmModal) Close() {
	if m.view == nil || !m.open {
		return
	}
	m.open = false
	m.onConfirm = nil
	m.view.ConfirmClosed()
}

// IsOpen reports whether the dialog is showing.
func (m *ConfirmModal) IsOpen() bool { return m.open }

// ConfirmBusy returns the busy control gating the delete button.
func (m *ConfirmModal) ConfirmBusy() gateway.Busy { return &m.busy }

// busyFlag is a plain loading flag satisfying gateway.Busy.
type busyFlag struct {
	loading bool
}

func (b *busyFlag) SetLoading(loading bool) { b.loading = loading }

// Loading reports the current state, for surfaces that render disabled
// buttons.
func (b *busyFlag) Loading() bool { return b.loading }
