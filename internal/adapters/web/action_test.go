package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopkeeper/internal/adapters/web"
	"shopkeeper/internal/app"
	"shopkeeper/internal/core"
	"shopkeeper/internal/gateway"
)

// fakeService stubs the handful of operations the handler tests touch.
// Calls to anything else panic through the embedded nil interface.
type fakeService struct {
	app.ApplicationService
	session *app.UserSession
}

func (f *fakeService) Login(ctx context.Context, username, password string) (*app.UserSession, error) {
	return f.session, nil
}

func (f *fakeService) Session(ctx context.Context, userID int) (*app.UserSession, error) {
	return f.session, nil
}

func (f *fakeService) GetSettings(ctx context.Context) (*app.SettingsResult, error) {
	return &app.SettingsResult{StoreName: "My Store", CurrencySymbol: "Rs. ", LowStockDefault: "5"}, nil
}

func (f *fakeService) ListProducts(ctx context.Context, req app.ListRequest) (*app.ProductListResult, error) {
	return &app.ProductListResult{
		Products: []app.ProductView{{ID: 1, Name: "Tea", UnitType: "pcs"}},
		Pagination: core.PageDescriptor{CurrentPage: 1, TotalPages: 1},
	}, nil
}

func (f *fakeService) DeleteProduct(ctx context.Context, id int) (*app.MessageResult, error) {
	return &app.MessageResult{Message: "Product deleted."}, nil
}

func adminSession() *app.UserSession {
	return &app.UserSession{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		Caps:     []string{app.CapManageRecords, app.CapDeleteRecords},
	}
}

func staffSession() *app.UserSession {
	return &app.UserSession{
		UserID:   2,
		Username: "staff",
		Role:     "staff",
		Caps:     []string{app.CapManageRecords},
	}
}

// bootstrap logs in and fetches the session payload, returning the auth
// cookie and a valid nonce.
func bootstrap(t *testing.T, h http.Handler) (*http.Cookie, string) {
	t.Helper()

	form := url.Values{"username": {"admin"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sess gateway.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	require.Equal(t, "/admin/action", sess.AjaxURL)
	require.NotEmpty(t, sess.Nonce)
	return cookie, sess.Nonce
}

func postAction(t *testing.T, h http.Handler, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func failureMessage(t *testing.T, env testEnvelope) string {
	t.Helper()
	var data struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Message
}

func TestHandleAction(t *testing.T) {
	h := web.NewHandler(&fakeService{session: adminSession()}, zap.NewNop(), "", "test-secret")
	cookie, nonce := bootstrap(t, h)

	t.Run("InvalidNonceRejected", func(t *testing.T) {
		rec := postAction(t, h, cookie, url.Values{
			"action": {"rsam_get_products"},
			"nonce":  {"bogus"},
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		env := decodeEnvelope(t, rec)
		require.False(t, env.Success)
		require.Equal(t, "Invalid nonce.", failureMessage(t, env))
	})

	t.Run("UnknownAction", func(t *testing.T) {
		rec := postAction(t, h, cookie, url.Values{
			"action": {"rsam_do_magic"},
			"nonce":  {nonce},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		require.False(t, env.Success)
		require.Equal(t, "Unknown action.", failureMessage(t, env))
	})

	t.Run("ListProducts", func(t *testing.T) {
		rec := postAction(t, h, cookie, url.Values{
			"action": {"rsam_get_products"},
			"nonce":  {nonce},
			"page":   {"1"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		require.True(t, env.Success)

		var result app.ProductListResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.Len(t, result.Products, 1)
		require.Equal(t, "Tea", result.Products[0].Name)
	})

	t.Run("DeleteWithAdminCaps", func(t *testing.T) {
		rec := postAction(t, h, cookie, url.Values{
			"action":     {"rsam_delete_product"},
			"nonce":      {nonce},
			"product_id": {"1"},
		})
		env := decodeEnvelope(t, rec)
		require.True(t, env.Success)
	})

	t.Run("UnauthenticatedRequestRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/action", strings.NewReader("action=rsam_get_products"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleActionDeleteRequiresCap(t *testing.T) {
	h := web.NewHandler(&fakeService{session: staffSession()}, zap.NewNop(), "", "test-secret")
	cookie, nonce := bootstrap(t, h)

	rec := postAction(t, h, cookie, url.Values{
		"action":     {"rsam_delete_product"},
		"nonce":      {nonce},
		"product_id": {"1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "You do not have permission to do that.", failureMessage(t, env))

	// Save stays available to staff.
	rec = postAction(t, h, cookie, url.Values{
		"action": {"rsam_get_products"},
		"nonce":  {nonce},
	})
	require.True(t, decodeEnvelope(t, rec).Success)
}
