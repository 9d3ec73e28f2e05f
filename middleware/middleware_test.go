package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habita/globals"
	"habita/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID string, role models.Role) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestAuthenticateStoresCaller(t *testing.T) {
	var got models.Caller
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		caller, ok := CallerFromRequest(r)
		require.True(t, ok)
		got = caller
	})

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "u1", models.RoleResident))
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Caller{ID: "u1", Role: models.RoleResident}, got)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Upgrade headers carry no identity; a websocket-looking request without a
// bearer token gets the same 401 as any other.
func TestAuthenticateRejectsUpgradeWithoutToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/leases/mine", nil)
	r.Header.Set("Connection", "Upgrade")
	r.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	claims := &Claims{UserID: "u1", Role: models.RoleResident}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run with a forged token")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	handler(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
