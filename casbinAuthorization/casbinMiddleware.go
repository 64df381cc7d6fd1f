package casbinAuthorization

import (
	"errors"
	"net/http"
	"strings"

	"booking_service/authorization"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"
)

func extractRole(r *http.Request) (string, error) {
	bearer := r.Header.Get("Authorization")
	if bearer == "" {
		return "Unauthenticated", nil
	}

	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return "", errors.New("invalid token format")
	}

	claims, err := authorization.VerifyJWT(bearerToken[1])
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func CasbinMiddleware(e *casbin.Enforcer, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			role, err := extractRole(r)
			if err != nil {
				logger.Error("Unauthorized access attempt")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := e.EnforceSafe(role, r.URL.Path, r.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy")
				http.Error(w, "unauthorized user", http.StatusUnauthorized)
				return
			}

			if !res {
				logger.Warn("Unauthorized access attempt: forbidden")
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
