package education

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type educationRepo interface {
	Add(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Entry, error)
}

type ListResponse struct {
	Education []Entry `json:"education"`
	Total     int     `json:"total"`
}

type Handler struct {
	repo educationRepo
}

func NewHandler(repo educationRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/education", handler.handleList).Methods("GET", "OPTIONS").Name("education-list")

	adminRouter := mainRouter.PathPrefix("/api/admin/education").Subrouter()
	adminRouter.HandleFunc("", handler.handleAdd).Methods("POST", "OPTIONS").Name("education-add")
	adminRouter.HandleFunc("", handler.handleUpdate).Methods("PUT").Name("education-update")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("education-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "educationHandler.list")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list education error: %s", err)
		http.Error(w, "failed to get education", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		entries = []Entry{}
	}

	respJson, err := json.Marshal(ListResponse{
		Education: entries,
		Total:     len(entries),
	})
	if err != nil {
		log.Errorf("marshal education error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "educationHandler.add")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("add education, unmarshal json params: %s", err)
		http.Error(w, "add education failed", http.StatusBadRequest)
		return
	}

	if entry.School == "" || entry.Degree == "" {
		http.Error(w, "error, school or degree empty", http.StatusBadRequest)
		return
	}
	if err := entry.validDates(); err != nil {
		http.Error(w, "error, invalid dates", http.StatusBadRequest)
		return
	}
	if entry.DisplayOrder <= 0 {
		entry.DisplayOrder = 1
	}

	addedEntry, err := handler.repo.Add(ctx, &entry)
	if err != nil {
		log.Errorf("failed to add education [%s @ %s]: %s", entry.Degree, entry.School, err)
		http.Error(w, "error, failed to add education", http.StatusInternalServerError)
		return
	}

	log.Debugf("new education added: [%s @ %s]: %d", addedEntry.Degree, addedEntry.School, addedEntry.ID)
	pkg.WriteResponse(w, "", fmt.Sprintf("added:%d", addedEntry.ID))
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "educationHandler.update")
	defer span.End()

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("update education, unmarshal json params: %s", err)
		http.Error(w, "update education failed", http.StatusBadRequest)
		return
	}

	if entry.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}
	if entry.School == "" || entry.Degree == "" {
		http.Error(w, "error, school or degree empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "education entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update education [%d]: %s", entry.ID, err)
		http.Error(w, "error, failed to update education", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", entry.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "educationHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "education entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete education %d: %s", id, err)
		http.Error(w, "error, education not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
