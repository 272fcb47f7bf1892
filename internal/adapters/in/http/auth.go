package http

import (
	"errors"
	"net/http"
	"strings"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const customerIDKey = "customer_id"

var errMissingToken = errors.New("missing bearer token")

// Authenticator validates HS256 session tokens issued by the identity
// provider. The subject claim is the customer id.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Middleware reads the token from the Authorization header, or from the
// token query parameter for websocket upgrades where browsers cannot set
// headers.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			customerID, err := a.customerID(c.Request())
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}
			c.Set(customerIDKey, customerID)
			return next(c)
		}
	}
}

func (a *Authenticator) customerID(r *http.Request) (kernel.UUID, error) {
	tokenStr := r.URL.Query().Get("token")
	if h := r.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		tokenStr = strings.TrimPrefix(h, "Bearer ")
	}
	if tokenStr == "" {
		return kernel.UUID{}, errMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromString(claims.Subject)
}

func customerIDFrom(c echo.Context) kernel.UUID {
	id, _ := c.Get(customerIDKey).(kernel.UUID)
	return id
}
