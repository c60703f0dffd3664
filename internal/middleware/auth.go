package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkoladic/portfolio-backend/internal/auth"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const (
	adminApiPrefix     = "/api/admin/"
	adminAuthApiPrefix = "/api/admin/auth"
)

//go:generate mockgen -source=auth.go -destination=mocks_test.go -package=middleware_test

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

// AuthMiddlewareHandler gates the admin API on a verified session cookie.
// Everything outside /api/admin/ is public; the auth endpoints themselves
// stay reachable, otherwise nobody could ever log in.
type AuthMiddlewareHandler struct {
	loginChecker loginChecker
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
	}
}

func (h *AuthMiddlewareHandler) pathIsProtected(path string) bool {
	if !strings.HasPrefix(path, adminApiPrefix) {
		return false
	}
	return !strings.HasPrefix(path, adminAuthApiPrefix)
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if !h.pathIsProtected(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			// a missing, malformed, forged or expired cookie all get
			// the exact same response
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				log.Tracef("[missing session] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-session-cookie")
				return
			}

			isLogged, err := h.loginChecker.IsLogged(ctx, cookie.Value)
			if err != nil {
				log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
				pkg.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
				return
			}
			if !isLogged {
				log.Tracef("[invalid session] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "not-logged")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
