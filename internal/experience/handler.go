package experience

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

type experienceRepo interface {
	Add(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Entry, error)
}

type ListResponse struct {
	Experience []Entry `json:"experience"`
	Total      int     `json:"total"`
}

type Handler struct {
	repo experienceRepo
}

func NewHandler(repo experienceRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/experience", handler.handleList).Methods("GET", "OPTIONS").Name("experience-list")

	adminRouter := mainRouter.PathPrefix("/api/admin/experience").Subrouter()
	adminRouter.HandleFunc("", handler.handleAdd).Methods("POST", "OPTIONS").Name("experience-add")
	adminRouter.HandleFunc("", handler.handleUpdate).Methods("PUT").Name("experience-update")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("experience-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "experienceHandler.list")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list experience error: %s", err)
		http.Error(w, "failed to get experience", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		entries = []Entry{}
	}

	respJson, err := json.Marshal(ListResponse{
		Experience: entries,
		Total:      len(entries),
	})
	if err != nil {
		log.Errorf("marshal experience error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "experienceHandler.add")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("add experience, unmarshal json params: %s", err)
		http.Error(w, "add experience failed", http.StatusBadRequest)
		return
	}

	if entry.Company == "" || entry.Position == "" {
		http.Error(w, "error, company or position empty", http.StatusBadRequest)
		return
	}
	if err := entry.validDates(); err != nil {
		http.Error(w, "error, invalid dates", http.StatusBadRequest)
		return
	}

	addedEntry, err := handler.repo.Add(ctx, &entry)
	if err != nil {
		log.Errorf("failed to add experience [%s @ %s]: %s", entry.Position, entry.Company, err)
		http.Error(w, "error, failed to add experience", http.StatusInternalServerError)
		return
	}

	log.Debugf("new experience added: [%s @ %s]: %d", addedEntry.Position, addedEntry.Company, addedEntry.ID)
	pkg.WriteResponse(w, "", fmt.Sprintf("added:%d", addedEntry.ID))
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "experienceHandler.update")
	defer span.End()

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("update experience, unmarshal json params: %s", err)
		http.Error(w, "update experience failed", http.StatusBadRequest)
		return
	}

	if entry.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}
	if entry.Company == "" || entry.Position == "" {
		http.Error(w, "error, company or position empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &entry); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "experience entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update experience [%d]: %s", entry.ID, err)
		http.Error(w, "error, failed to update experience", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", entry.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "experienceHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "experience entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete experience %d: %s", id, err)
		http.Error(w, "error, experience not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
