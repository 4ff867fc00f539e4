package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocery-api/middleware"
	"grocery-api/utils"
)

func init() {
	utils.JwtKey = []byte("test-secret")
}

func claimsProbe(t *testing.T, captured **utils.Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
		if ok {
			*captured = claims
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	token, err := utils.GenerateJWT(userID, "user")
	require.NoError(t, err)

	var captured *utils.Claims
	handler := middleware.AuthMiddleware(claimsProbe(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/order/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "user", captured.Role)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *utils.Claims
			handler := middleware.AuthMiddleware(claimsProbe(t, &captured))

			req := httptest.NewRequest(http.MethodGet, "/api/order/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, captured)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name string
		role string
		wrap func(http.Handler) http.Handler
		want int
	}{
		{"seller passes seller gate", "seller", middleware.SellerMiddleware, http.StatusOK},
		{"user fails seller gate", "user", middleware.SellerMiddleware, http.StatusUnauthorized},
		{"admin passes admin gate", "admin", middleware.AdminMiddleware, http.StatusOK},
		{"seller fails admin gate", "seller", middleware.AdminMiddleware, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), tt.role)
			require.NoError(t, err)

			var captured *utils.Claims
			handler := middleware.AuthMiddleware(tt.wrap(claimsProbe(t, &captured)))

			req := httptest.NewRequest(http.MethodGet, "/api/order/seller", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
