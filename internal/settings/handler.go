package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dkoladic/portfolio-backend/internal/cache"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const cacheKey = "settings"

type settingsRepo interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

type Handler struct {
	repo          settingsRepo
	responseCache *cache.ResponseCache
}

func NewHandler(repo settingsRepo, responseCache *cache.ResponseCache) *Handler {
	return &Handler{
		repo:          repo,
		responseCache: responseCache,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/settings", handler.handleGet).Methods("GET", "OPTIONS").Name("settings-get")
	mainRouter.HandleFunc("/api/admin/settings", handler.handleUpsert).Methods("PUT").Name("settings-upsert")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "settingsHandler.get")
	defer span.End()

	if cached, ok := handler.responseCache.Get(cacheKey); ok {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	settings, err := handler.repo.GetAll(ctx)
	if err != nil {
		log.Errorf("get settings error: %s", err)
		http.Error(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(settings)
	if err != nil {
		log.Errorf("marshal settings error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Set(cacheKey, respJson)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "settingsHandler.upsert")
	defer span.End()

	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		log.Errorf("upsert settings, unmarshal json params: %s", err)
		http.Error(w, "upsert settings failed", http.StatusBadRequest)
		return
	}

	if len(values) == 0 {
		http.Error(w, "error, no settings given", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Upsert(ctx, values); err != nil {
		log.Errorf("failed to upsert settings: %s", err)
		http.Error(w, "error, failed to save settings", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Invalidate(cacheKey)

	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
