package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3ddruckrorbas/Druck/internal/auth"
	"github.com/3ddruckrorbas/Druck/internal/fstore"
	"github.com/3ddruckrorbas/Druck/internal/store"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Dispatch(subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, subject+": "+body)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func setupRouter(t *testing.T) (*gin.Engine, *recordingNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files := fstore.New(t.TempDir())
	orders := store.NewOrderStore(files)
	filaments := store.NewFilamentStore(files)
	creds := store.NewCredentialStore(files, "admin123")

	notifier := &recordingNotifier{}
	codes := auth.NewCodeTable(time.Hour)
	authSvc := auth.NewService(creds, codes, auth.NewAllowlist([]string{"7e4cf2"}), notifier)

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>druck</html>"), 0o644))

	handler := NewHandler(orders, filaments, creds, authSvc, notifier)
	router := NewRouter(handler, RouterOptions{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		StaticDir:       staticDir,
	})
	return router, notifier
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrders_CreateAppliesDefaultsAndNotifies(t *testing.T) {
	router, notifier := setupRouter(t)

	w := do(router, "POST", "/api/orders", `{"deviceId":"dev-1","description":"Benchy","material":"PLA"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.NotEmpty(t, order["id"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "", order["adminNotes"])
	assert.Equal(t, "Benchy", order["description"])

	_, err := time.Parse(time.RFC3339, order["createdAt"].(string))
	assert.NoError(t, err)

	assert.Contains(t, notifier.last(), "New print order")
}

func TestOrders_ListSortedAndFiltered(t *testing.T) {
	router, _ := setupRouter(t)

	require.Equal(t, http.StatusCreated, do(router, "POST", "/api/orders", `{"deviceId":"a","description":"one"}`).Code)
	time.Sleep(5 * time.Millisecond)
	require.Equal(t, http.StatusCreated, do(router, "POST", "/api/orders", `{"deviceId":"b","description":"two"}`).Code)

	w := do(router, "GET", "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "two", all[0]["description"])
	assert.Equal(t, "one", all[1]["description"])

	w = do(router, "GET", "/api/orders?deviceId=a", "")
	require.Equal(t, http.StatusOK, w.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "one", mine[0]["description"])
}

func TestOrders_UpdateAndDelete(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/api/orders", `{"description":"Benchy"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = do(router, "PUT", "/api/orders/"+id, `{"status":"printing"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var collection []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))
	require.Len(t, collection, 1)
	assert.Equal(t, "printing", collection[0]["status"])

	assert.Equal(t, http.StatusNotFound, do(router, "PUT", "/api/orders/missing", `{"status":"x"}`).Code)

	w = do(router, "DELETE", "/api/orders/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, do(router, "DELETE", "/api/orders/"+id, "").Code)

	// Collection unchanged after the failed delete.
	w = do(router, "GET", "/api/orders", "")
	var remaining []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &remaining))
	assert.Empty(t, remaining)
}

func TestFilaments_CRUD(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "GET", "/api/filaments", "")
	require.Equal(t, http.StatusOK, w.Code)
	var filaments []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filaments))
	assert.Len(t, filaments, 11)

	w = do(router, "POST", "/api/filaments", `{"name":"Silk Gold","color":"Gold","colorHex":"#d4af37","material":"PLA"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filaments))
	require.Len(t, filaments, 12)
	created := filaments[len(filaments)-1]
	assert.Equal(t, true, created["inStock"])
	id := created["id"].(string)

	w = do(router, "PUT", "/api/filaments/"+id, `{"inStock":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filaments))
	assert.Equal(t, false, filaments[len(filaments)-1]["inStock"])

	assert.Equal(t, http.StatusNotFound, do(router, "PUT", "/api/filaments/missing", `{}`).Code)

	w = do(router, "DELETE", "/api/filaments/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filaments))
	assert.Len(t, filaments, 11)
}

func TestAuth_InvalidPassword(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/api/auth/login", `{"password":"wrong","deviceId":"dev"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_AllowlistedDeviceSkipsSecondFactor(t *testing.T) {
	router, notifier := setupRouter(t)

	w := do(router, "POST", "/api/auth/login", `{"password":"admin123","deviceId":"7e4cf2xxxx"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["require2FA"])
	assert.Empty(t, notifier.last())
}

var codeRe = regexp.MustCompile(`\b(\d{6})\b`)

func TestAuth_LoginVerifyEndToEnd(t *testing.T) {
	router, notifier := setupRouter(t)

	w := do(router, "POST", "/api/auth/login", `{"password":"admin123","deviceId":"stranger"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["require2FA"])

	match := codeRe.FindStringSubmatch(notifier.last())
	require.NotNil(t, match, "login code should be in the dispatched notification")
	code := match[1]

	w = do(router, "POST", "/api/auth/verify", `{"code":"`+code+`","deviceId":"stranger"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	// The code is single use.
	w = do(router, "POST", "/api/auth/verify", `{"code":"`+code+`","deviceId":"stranger"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_VerifyWithoutPendingCode(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/api/auth/verify", `{"code":"123456","deviceId":"nobody"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswords_Endpoints(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "GET", "/api/admin/passwords", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["admin123"]`, w.Body.String())

	w = do(router, "POST", "/api/admin/passwords", `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["admin123","hunter2"]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(router, "POST", "/api/admin/passwords", `{"password":""}`).Code)

	w = do(router, "DELETE", "/api/admin/passwords/admin123", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["hunter2"]`, w.Body.String())

	// Removing the last remaining password is refused.
	w = do(router, "DELETE", "/api/admin/passwords/hunter2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `["hunter2"]`, do(router, "GET", "/api/admin/passwords", "").Body.String())
}

func TestSPAFallback(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "GET", "/some/client/route", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "druck")
}
