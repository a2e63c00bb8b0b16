package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles accepted in the token's role claim.
const (
	RoleAdmin     = "admin"
	RoleEcommerce = "ecommerce"
	RoleDriver    = "driver"
)

const userContextKey = "user"

var ErrTokenMissing = errors.New("authorization token missing")

// User is the authenticated caller.
type User struct {
	ID       string
	Username string
	Role     string
}

// Claims are the JWT claims the service reads; sub carries the user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies an HS256 bearer token and stores the caller in the
// request context. Requests without a valid token get 401.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authenticateRequest(c.Request(), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "Unauthorized",
					Details: err.Error(),
				})
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRoles answers 403 unless the authenticated caller has one of roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error:   "Unauthorized",
					Details: ErrTokenMissing.Error(),
				})
			}
			if !slices.Contains(roles, user.Role) {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Error:   "Forbidden",
					Details: fmt.Sprintf("role %q may not access this resource", user.Role),
				})
			}
			return next(c)
		}
	}
}

func UserFromContext(c echo.Context) (User, bool) {
	user, ok := c.Get(userContextKey).(User)
	return user, ok
}

// IssueToken signs an HS256 token for user that expires after ttl.
func IssueToken(secret []byte, user User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func authenticateRequest(r *http.Request, secret []byte) (User, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return User{}, ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return User{}, errors.New("invalid authorization header format")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return User{}, fmt.Errorf("invalid token: %w", err)
	}

	if claims.Subject == "" || claims.Role == "" {
		return User{}, errors.New("invalid token: sub and role claims are required")
	}

	return User{
		ID:       claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
