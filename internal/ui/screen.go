package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"shopkeeper/internal/core"
	"shopkeeper/internal/gateway"
	"shopkeeper/internal/i18n"
)

// Record is one row of a list response, kept dynamic because every
// entity ships different fields.
type Record map[string]any

// String returns the named field rendered as a display string.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the named field as an integer, or 0.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Column describes one list table column.
type Column struct {
	Key   string
	Label string
}

// EntityDescriptor is everything the generic screen controller needs to
// drive one entity: its actions, its list shape, and its modal form.
type EntityDescriptor struct {
	Screen       string
	Singular     string
	ListAction   string
	SaveAction   string
	DeleteAction string

	// ListKey is the field of the list response holding the rows.
	ListKey string
	// IDField is the form/payload field carrying the entity ID.
	IDField string
	// LabelKey is the row field shown in delete confirmations.
	LabelKey string

	Columns  []Column
	NewForm  func() *Form
	Populate func(form *Form, rec Record)
}

// Surface renders list screen states for a concrete frontend.
type Surface interface {
	ShowLoading(message string)
	ShowError(message string)
	ShowEmpty(message string)
	ShowTable(columns []Column, rows []Record)
	ShowPagination(pc *PageControls)
}

// Caller executes admin actions; *gateway.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, action string, payload url.Values, busy gateway.Busy) (json.RawMessage, error)
}

// Env bundles the shared machinery a screen runs on.
type Env struct {
	Client  Caller
	Surface Surface
	Modal   *Modal
	Confirm *ConfirmModal
	Toasts  *Toaster
	Strings i18n.Catalog
}

// Screen is the generic list screen controller: paged, searched, with
// add/edit and delete flows through the shared modals. Every entity
// screen is an instance of it with a different descriptor.
type Screen struct {
	desc     EntityDescriptor
	env      Env
	debounce *Debouncer

	mu     sync.Mutex
	page   int
	search string
	rows   []Record

	fetchSeq atomic.Uint64
}

// NewScreen builds a screen for the descriptor.
func NewScreen(desc EntityDescriptor, env Env) *Screen {
	return &Screen{
		desc:     desc,
		env:      env,
		debounce: NewDebouncer(DefaultSearchDelay),
		page:     1,
	}
}

// Refresh loads the current page.
func (s *Screen) Refresh(ctx context.Context) {
	s.fetch(ctx)
}

// SearchChanged records a keystroke in the search box. The actual fetch
// is debounced so only the final term of a burst hits the server, with
// the page reset to 1.
func (s *Screen) SearchChanged(ctx context.Context, term string) {
	s.debounce.Trigger(func() {
		s.mu.Lock()
		s.search = term
		s.page = 1
		s.mu.Unlock()
		s.fetch(ctx)
	})
}

// fetch loads one page. Responses that arrive after a newer fetch has
// started are discarded so a slow page-1 response can never overwrite
// page 2.
func (s *Screen) fetch(ctx context.Context) {
	seq := s.fetchSeq.Add(1)

	s.env.Surface.ShowLoading(s.env.Strings.Loading)

	s.mu.Lock()
	payload := url.Values{
		"page":   {strconv.Itoa(s.page)},
		"search": {s.search},
	}
	s.mu.Unlock()

	data, err := s.env.Client.Call(ctx, s.desc.ListAction, payload, nil)
	if s.fetchSeq.Load() != seq {
		return
	}
	if err != nil {
		s.env.Surface.ShowError(err.Error())
		return
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		s.env.Surface.ShowError(s.env.Strings.ErrorOccurred)
		return
	}
	var rows []Record
	if raw, ok := body[s.desc.ListKey]; ok {
		if err := json.Unmarshal(raw, &rows); err != nil {
			s.env.Surface.ShowError(s.env.Strings.ErrorOccurred)
			return
		}
	}
	var pd core.PageDescriptor
	if raw, ok := body["pagination"]; ok {
		_ = json.Unmarshal(raw, &pd)
	}

	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()

	if len(rows) == 0 {
		s.env.Surface.ShowEmpty(s.env.Strings.NoItemsFound)
	} else {
		s.env.Surface.ShowTable(s.desc.Columns, rows)
	}
	s.env.Surface.ShowPagination(RenderPagination(pd, func(page int) {
		s.mu.Lock()
		s.page = page
		s.mu.Unlock()
		s.fetch(ctx)
	}))
}

// Rows returns the rows of the last loaded page.
func (s *Screen) Rows() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// AddNew opens the modal with a blank form.
func (s *Screen) AddNew(ctx context.Context) {
	title := fmt.Sprintf("%s %s", s.env.Strings.AddNew, s.desc.Singular)
	s.openEditor(ctx, title, s.desc.NewForm())
}

// Edit opens the modal populated from the indexed row.
func (s *Screen) Edit(ctx context.Context, index int) error {
	rec, err := s.row(index)
	if err != nil {
		return err
	}
	form := s.desc.NewForm()
	s.desc.Populate(form, rec)
	title := fmt.Sprintf("%s %s", s.env.Strings.Edit, s.desc.Singular)
	s.openEditor(ctx, title, form)
	return nil
}

func (s *Screen) openEditor(ctx context.Context, title string, form *Form) {
	s.env.Modal.Open(title, form, func() {
		if err := form.Validate(); err != nil {
			s.env.Modal.ReportInvalid(err.Error())
			return
		}
		payload := url.Values{"form_data": {form.Encode().Encode()}}
		data, err := s.env.Client.Call(ctx, s.desc.SaveAction, payload, s.env.Modal.SaveBusy())
		if err != nil {
			// The gateway already raised the error toast; keep the
			// modal open so the user can correct and retry.
			return
		}
		s.env.Toasts.Success(resultMessage(data))
		s.env.Modal.Close()
		s.fetch(ctx)
	})
}

// Delete opens the confirmation dialog for the indexed row and, on
// confirmation, deletes it and reloads the list.
func (s *Screen) Delete(ctx context.Context, index int) error {
	rec, err := s.row(index)
	if err != nil {
		return err
	}
	label := rec.String(s.desc.LabelKey)
	id := rec.String("id")

	title := fmt.Sprintf("%s %s?", s.env.Strings.Delete, label)
	message := fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", label)

	s.env.Confirm.Open(title, message, func() {
		payload := url.Values{s.desc.IDField: {id}}
		data, err := s.env.Client.Call(ctx, s.desc.DeleteAction, payload, s.env.Confirm.ConfirmBusy())
		if err != nil {
			s.env.Confirm.Close()
			return
		}
		s.env.Toasts.Success(resultMessage(data))
		s.env.Confirm.Close()
		s.fetch(ctx)
	})
	return nil
}

// Close stops the screen's background machinery.
func (s *Screen) Close() {
	s.debounce.Stop()
}

func (s *Screen) row(index int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rows) {
		return nil, fmt.Errorf("no row %d on this page", index+1)
	}
	return s.rows[index], nil
}

func resultMessage(data json.RawMessage) string {
	var msg struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &msg)
	return msg.Message
}
