package ui_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"shopkeeper/internal/gateway"
	"shopkeeper/internal/i18n"
	"shopkeeper/internal/ui"
)

type surfaceRecorder struct {
	loading []string
	errors  []string
	empty   []string
	tables  [][]ui.Record
	pagers  []*ui.PageControls
}

func (s *surfaceRecorder) ShowLoading(message string) { s.loading = append(s.loading, message) }
func (s *surfaceRecorder) ShowError(message string)   { s.errors = append(s.errors, message) }
func (s *surfaceRecorder) ShowEmpty(message string)   { s.empty = append(s.empty, message) }
func (s *surfaceRecorder) ShowTable(columns []ui.Column, rows []ui.Record) {
	s.tables = append(s.tables, rows)
}
func (s *surfaceRecorder) ShowPagination(pc *ui.PageControls) { s.pagers = append(s.pagers, pc) }

func (s *surfaceRecorder) lastPager() *ui.PageControls {
	if len(s.pagers) == 0 {
		return nil
	}
	return s.pagers[len(s.pagers)-1]
}

type call struct {
	action  string
	payload url.Values
}

type fakeCaller struct {
	calls []call
	fn    func(action string, payload url.Values) (json.RawMessage, error)
}

func (c *fakeCaller) Call(ctx context.Context, action string, payload url.Values, busy gateway.Busy) (json.RawMessage, error) {
	c.calls = append(c.calls, call{action: action, payload: payload})
	if busy != nil {
		busy.SetLoading(true)
		defer busy.SetLoading(false)
	}
	return c.fn(action, payload)
}

type screenFixture struct {
	screen     *ui.Screen
	caller     *fakeCaller
	surface    *surfaceRecorder
	modal      *modalViewRecorder
	confirm    *confirmViewRecorder
	toasts     *sinkRecorder
	modalCtl   *ui.Modal
	confirmCtl *ui.ConfirmModal
}

func newScreenFixture(t *testing.T) *screenFixture {
	t.Helper()
	f := &screenFixture{
		caller:  &fakeCaller{},
		surface: &surfaceRecorder{},
		modal:   &modalViewRecorder{},
		confirm: &confirmViewRecorder{},
		toasts:  &sinkRecorder{},
	}
	f.modalCtl = ui.NewModal(f.modal)
	f.confirmCtl = ui.NewConfirmModal(f.confirm)
	desc := ui.Descriptors()[0] // products
	f.screen = ui.NewScreen(desc, ui.Env{
		Client:  f.caller,
		Surface: f.surface,
		Modal:   f.modalCtl,
		Confirm: f.confirmCtl,
		Toasts:  ui.NewToaster(f.toasts),
		Strings: i18n.Default(),
	})
	t.Cleanup(f.screen.Close)
	return f
}

func productListBody(pages int, names ...string) json.RawMessage {
	rows := make([]map[string]any, 0, len(names))
	for i, name := range names {
		rows = append(rows, map[string]any{
			"id":                      i + 1,
			"name":                    name,
			"category":                "Grocery",
			"unit_type":               "pcs",
			"stock_quantity":          "10",
			"stock_value_formatted":   "Rs. 100.00",
			"selling_price":           "10.00",
			"selling_price_formatted": "Rs. 10.00",
			"low_stock_threshold":     "5",
			"has_expiry":              0,
		})
	}
	body, _ := json.Marshal(map[string]any{
		"products":   rows,
		"pagination": map[string]int{"current_page": 1, "total_pages": pages},
	})
	return body
}

func TestScreenRefresh(t *testing.T) {
	t.Run("EmptyListShowsEmptyState", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			return productListBody(1), nil
		}

		f.screen.Refresh(context.Background())

		require.Equal(t, []string{"Loading..."}, f.surface.loading)
		require.Equal(t, []string{"No items found."}, f.surface.empty)
		require.Empty(t, f.surface.tables)
		require.Nil(t, f.surface.lastPager())
	})

	t.Run("RowsShownWithoutPagerOnSinglePage", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			require.Equal(t, "rsam_get_products", action)
			require.Equal(t, "1", payload.Get("page"))
			require.Equal(t, "", payload.Get("search"))
			return productListBody(1, "Tea", "Sugar"), nil
		}

		f.screen.Refresh(context.Background())

		require.Len(t, f.surface.tables, 1)
		require.Equal(t, "Tea", f.surface.tables[0][0].String("name"))
		require.Nil(t, f.surface.lastPager())
		require.Len(t, f.screen.Rows(), 2)
	})

	t.Run("ErrorShownOnFailedCall", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			return nil, fmt.Errorf("Invalid nonce.")
		}

		f.screen.Refresh(context.Background())

		require.Equal(t, []string{"Invalid nonce."}, f.surface.errors)
		require.Empty(t, f.surface.tables)
	})
}

func TestScreenPagination(t *testing.T) {
	f := newScreenFixture(t)
	f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
		return productListBody(3, "Tea"), nil
	}

	f.screen.Refresh(context.Background())
	pager := f.surface.lastPager()
	require.NotNil(t, pager)
	require.Equal(t, "Page 1 of 3", pager.Label())

	pager.Next()

	require.Len(t, f.caller.calls, 2)
	require.Equal(t, "2", f.caller.calls[1].payload.Get("page"))
}

func TestScreenStaleResponseDiscarded(t *testing.T) {
	f := newScreenFixture(t)
	first := true
	f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
		if first {
			first = false
			// A newer fetch completes while this response is in flight.
			f.screen.Refresh(context.Background())
			return productListBody(1, "Stale"), nil
		}
		return productListBody(1, "Fresh"), nil
	}

	f.screen.Refresh(context.Background())

	require.Len(t, f.surface.tables, 1)
	require.Equal(t, "Fresh", f.surface.tables[0][0].String("name"))
}

func TestScreenSaveFlow(t *testing.T) {
	t.Run("InvalidFormStaysOpen", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			t.Fatalf("no call expected for action %s", action)
			return nil, nil
		}

		f.screen.AddNew(context.Background())
		require.Equal(t, []string{"Add New Product"}, f.modal.openedTitles)

		f.modalCtl.Save()
		require.Equal(t, []string{"Name is required"}, f.modal.invalid)
		require.Equal(t, 0, f.modal.closed)
		require.Empty(t, f.caller.calls)
	})

	t.Run("ValidFormSavesAndReloads", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			switch action {
			case "rsam_save_product":
				formData, err := url.ParseQuery(payload.Get("form_data"))
				require.NoError(t, err)
				require.Equal(t, "Tea", formData.Get("name"))
				require.Equal(t, "120.50", formData.Get("selling_price"))
				return json.RawMessage(`{"message":"Product saved."}`), nil
			case "rsam_get_products":
				return productListBody(1, "Tea"), nil
			default:
				t.Fatalf("unexpected action %s", action)
				return nil, nil
			}
		}

		f.screen.AddNew(context.Background())
		form := f.modalCtl.Form()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("selling_price", "120.50"))
		require.NoError(t, form.Set("low_stock_threshold", "5"))

		f.modalCtl.Save()

		require.Equal(t, 1, f.modal.closed)
		require.Equal(t, "Product saved.", f.toasts.shown[0].Message)
		require.Equal(t, "success", f.toasts.shown[0].Kind)
		require.Len(t, f.surface.tables, 1)
	})

	t.Run("ServerFailureKeepsModalOpen", func(t *testing.T) {
		f := newScreenFixture(t)
		f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
			return nil, fmt.Errorf("product name is required")
		}

		f.screen.AddNew(context.Background())
		form := f.modalCtl.Form()
		require.NoError(t, form.Set("name", "Tea"))
		require.NoError(t, form.Set("selling_price", "10"))
		require.NoError(t, form.Set("low_stock_threshold", "5"))

		f.modalCtl.Save()

		require.Equal(t, 0, f.modal.closed)
		require.Len(t, f.caller.calls, 1)
	})
}

func TestScreenDeleteFlow(t *testing.T) {
	f := newScreenFixture(t)
	f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
		return productListBody(1, "Tea"), nil
	}
	f.screen.Refresh(context.Background())

	f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
		switch action {
		case "rsam_delete_product":
			require.Equal(t, "1", payload.Get("product_id"))
			return json.RawMessage(`{"message":"Product deleted."}`), nil
		case "rsam_get_products":
			return productListBody(1), nil
		default:
			t.Fatalf("unexpected action %s", action)
			return nil, nil
		}
	}

	require.NoError(t, f.screen.Delete(context.Background(), 0))
	require.Equal(t, []string{"Delete Tea?"}, f.confirm.openedTitles)
	require.Contains(t, f.confirm.openedMessages[0], `"Tea"`)
	require.Contains(t, f.confirm.openedMessages[0], "cannot be undone")

	f.confirmCtl.Confirm()

	require.Equal(t, 1, f.confirm.closed)
	require.Equal(t, "Product deleted.", f.toasts.shown[0].Message)
	require.Equal(t, []string{"No items found."}, f.surface.empty)

	require.Error(t, f.screen.Delete(context.Background(), 5))
}

func TestScreenEditPopulatesForm(t *testing.T) {
	f := newScreenFixture(t)
	f.caller.fn = func(action string, payload url.Values) (json.RawMessage, error) {
		return productListBody(1, "Tea"), nil
	}
	f.screen.Refresh(context.Background())

	require.NoError(t, f.screen.Edit(context.Background(), 0))
	require.Equal(t, []string{"Edit Product"}, f.modal.openedTitles)

	form := f.modalCtl.Form()
	require.Equal(t, "1", form.Field("product_id").Value)
	require.Equal(t, "Tea", form.Field("name").Value)
	require.Equal(t, "10.00", form.Field("selling_price").Value)
	require.False(t, form.Field("has_expiry").Checked)
}
