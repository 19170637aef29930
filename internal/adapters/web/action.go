package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shopkeeper/internal/app"
)

// actionFunc executes one admin action against the application service.
type actionFunc func(ctx context.Context, form url.Values) (any, error)

// actionEntry pairs a handler with the capability it needs beyond the
// baseline manage_records every authenticated user holds.
type actionEntry struct {
	fn            actionFunc
	requireDelete bool
}

// actionTable builds the dispatch table for POST /admin/action. Every
// screen talks to this single endpoint, selecting behavior with the
// `action` form field.
func (h *Handler) actionTable() map[string]actionEntry {
	return map[string]actionEntry{
		"rsam_get_dashboard_stats": {fn: func(ctx context.Context, form url.Values) (any, error) {
			return h.svc.GetDashboardStats(ctx)
		}},
		"rsam_get_report": {fn: h.getReport},

		"rsam_get_products": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListProducts(ctx, req)
		})},
		"rsam_save_product": {fn: saveAction(parseSaveProduct, func(ctx context.Context, req app.SaveProductRequest) (any, error) {
			return h.svc.SaveProduct(ctx, req)
		})},
		"rsam_delete_product": {requireDelete: true, fn: deleteAction("product_id", h.svc.DeleteProduct)},

		"rsam_get_suppliers": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListSuppliers(ctx, req)
		})},
		"rsam_save_supplier": {fn: saveAction(parseSaveSupplier, func(ctx context.Context, req app.SaveSupplierRequest) (any, error) {
			return h.svc.SaveSupplier(ctx, req)
		})},
		"rsam_delete_supplier": {requireDelete: true, fn: deleteAction("supplier_id", h.svc.DeleteSupplier)},

		"rsam_get_customers": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListCustomers(ctx, req)
		})},
		"rsam_save_customer": {fn: saveAction(parseSaveCustomer, func(ctx context.Context, req app.SaveCustomerRequest) (any, error) {
			return h.svc.SaveCustomer(ctx, req)
		})},
		"rsam_delete_customer": {requireDelete: true, fn: deleteAction("customer_id", h.svc.DeleteCustomer)},

		"rsam_get_employees": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListEmployees(ctx, req)
		})},
		"rsam_save_employee": {fn: saveAction(parseSaveEmployee, func(ctx context.Context, req app.SaveEmployeeRequest) (any, error) {
			return h.svc.SaveEmployee(ctx, req)
		})},
		"rsam_delete_employee": {requireDelete: true, fn: deleteAction("employee_id", h.svc.DeleteEmployee)},

		"rsam_get_expenses": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListExpenses(ctx, req)
		})},
		"rsam_save_expense": {fn: saveAction(parseSaveExpense, func(ctx context.Context, req app.SaveExpenseRequest) (any, error) {
			return h.svc.SaveExpense(ctx, req)
		})},
		"rsam_delete_expense": {requireDelete: true, fn: deleteAction("expense_id", h.svc.DeleteExpense)},

		"rsam_get_purchases": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListPurchases(ctx, req)
		})},
		"rsam_save_purchase": {fn: saveAction(parseSavePurchase, func(ctx context.Context, req app.SavePurchaseRequest) (any, error) {
			return h.svc.SavePurchase(ctx, req)
		})},
		"rsam_delete_purchase": {requireDelete: true, fn: deleteAction("purchase_id", h.svc.DeletePurchase)},

		"rsam_get_sales": {fn: listAction(func(ctx context.Context, req app.ListRequest) (any, error) {
			return h.svc.ListSales(ctx, req)
		})},
		"rsam_save_sale": {fn: saveAction(parseSaveSale, func(ctx context.Context, req app.SaveSaleRequest) (any, error) {
			return h.svc.SaveSale(ctx, req)
		})},
		"rsam_delete_sale": {requireDelete: true, fn: deleteAction("sale_id", h.svc.DeleteSale)},

		"rsam_get_settings": {fn: func(ctx context.Context, form url.Values) (any, error) {
			return h.svc.GetSettings(ctx)
		}},
		"rsam_save_settings": {fn: saveAction(parseSaveSettings, func(ctx context.Context, req app.SaveSettingsRequest) (any, error) {
			return h.svc.SaveSettings(ctx, req)
		})},
	}
}

// handleAction is POST /admin/action: the one RPC endpoint behind all
// admin screens. Nonce failures are 403 so the client surfaces them as
// security errors rather than validation messages.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusOK, "Invalid request.")
		return
	}

	if !h.nonces.valid(r.PostForm.Get("nonce")) {
		writeFailure(w, http.StatusForbidden, "Invalid nonce.")
		return
	}

	entry, ok := h.actions[r.PostForm.Get("action")]
	if !ok {
		writeFailure(w, http.StatusOK, "Unknown action.")
		return
	}

	if entry.requireDelete {
		claims := authFromContext(r.Context())
		sess, err := h.svc.Session(r.Context(), claims.UserID)
		if err != nil || !sess.CanDelete() {
			writeFailure(w, http.StatusOK, "You do not have permission to do that.")
			return
		}
	}

	data, err := entry.fn(r.Context(), r.PostForm)
	if err != nil {
		writeFailure(w, http.StatusOK, err.Error())
		return
	}
	writeSuccess(w, data)
}

var errInvalidDate = errors.New("invalid date")

func listAction(list func(ctx context.Context, req app.ListRequest) (any, error)) actionFunc {
	return func(ctx context.Context, form url.Values) (any, error) {
		page, _ := strconv.Atoi(form.Get("page"))
		return list(ctx, app.ListRequest{Page: page, Search: form.Get("search")})
	}
}

func saveAction[R any](parse func(url.Values) (R, error), save func(ctx context.Context, req R) (any, error)) actionFunc {
	return func(ctx context.Context, form url.Values) (any, error) {
		fields, err := formData(form)
		if err != nil {
			return nil, err
		}
		req, err := parse(fields)
		if err != nil {
			return nil, err
		}
		return save(ctx, req)
	}
}

func deleteAction(idField string, del func(ctx context.Context, id int) (*app.MessageResult, error)) actionFunc {
	return func(ctx context.Context, form url.Values) (any, error) {
		id, err := requiredID(form, idField)
		if err != nil {
			return nil, err
		}
		return del(ctx, id)
	}
}

// getReport reads the date range from the request itself; the reports
// screen has no modal form.
func (h *Handler) getReport(ctx context.Context, form url.Values) (any, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if raw := form.Get("date_from"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, errInvalidDate
		}
		from = d
	}
	if raw := form.Get("date_to"); raw != "" {
		d, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, errInvalidDate
		}
		to = d
	}
	return h.svc.GetReport(ctx, from, to)
}
