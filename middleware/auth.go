package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"grocery-api/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "Unauthorized", "success": false,
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "Unauthorized", "success": false,
			})
			return
		}

		tokenStr := parts[1]
		claims := &utils.Claims{}

		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return utils.JwtKey, nil
		})

		if err != nil || !token.Valid {
			utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "Unauthorized", "success": false,
			})
			return
		}

		// Attach user information to the request context
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SellerMiddleware ensures the authenticated caller is a seller
func SellerMiddleware(next http.Handler) http.Handler {
	return requireRole(next, "seller")
}

// AdminMiddleware ensures the authenticated caller is an admin
func AdminMiddleware(next http.Handler) http.Handler {
	return requireRole(next, "admin")
}

func requireRole(next http.Handler, role string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || claims.Role != role {
			utils.WriteJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"message": "Unauthorized", "success": false,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
