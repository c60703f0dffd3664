package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkoladic/portfolio-backend/internal/auth"
	"github.com/dkoladic/portfolio-backend/internal/middleware"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/metrics"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Handler owns the session lifecycle endpoints: login, logout and
// session verification. The session travels in an HTTP-only cookie,
// never in the response body.
type Handler struct {
	authority      *auth.Authority
	metricsManager *metrics.Manager
	production     bool
}

func NewHandler(
	authority *auth.Authority,
	metricsManager *metrics.Manager,
	production bool,
) *Handler {
	return &Handler{
		authority:      authority,
		metricsManager: metricsManager,
		production:     production,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
) {
	authRouter := mainRouter.PathPrefix("/api/admin/auth").Subrouter()
	authRouter.HandleFunc("", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("", handler.handleLogout).Methods("DELETE").Name("logout")
	authRouter.HandleFunc("/verify", handler.handleVerify).Methods("GET", "OPTIONS").Name("verify-session")

	// rate limit login attempts to slow down credential guessing
	authRouter.Use(middleware.RateLimit(rateLimiter, "admin-auth", loginAllowedPerMin, handler.metricsManager))
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "adminHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq LoginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			pkg.WriteJSONError(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = LoginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		pkg.WriteJSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	if !handler.authority.ValidateCredentials(loginReq.Username, loginReq.Password) {
		userIP, _ := pkg.ReadUserIP(r)
		log.Tracef("failed login attempt for user [%s] from [%s]", loginReq.Username, userIP)
		handler.countLogin("failure")
		pkg.WriteJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := handler.authority.Issue()
	if err != nil {
		if errors.Is(err, auth.ErrSecretNotConfigured) {
			log.Error("login refused: session secret not configured")
		} else {
			log.Errorf("login failed, issue token error: %s", err)
		}
		handler.countLogin("error")
		pkg.WriteJSONError(w, "authentication is not available", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(handler.authority.TTL().Seconds()),
		HttpOnly: true,
		Secure:   handler.production,
		SameSite: http.SameSiteStrictMode,
	})

	log.Trace("new login success")
	handler.countLogin("success")
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "adminHandler.logout")
	defer span.End()

	// the token is self-contained and cannot be revoked server-side,
	// logging out means telling the browser to drop the cookie
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.production,
		SameSite: http.SameSiteStrictMode,
	})

	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

func (handler *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "adminHandler.verify")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil || !handler.authority.Verify(cookie.Value) {
		pkg.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"authenticated":true}`)
}

func (handler *Handler) countLogin(outcome string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterLogins.With(prometheus.Labels{"outcome": outcome}).Inc()
}
