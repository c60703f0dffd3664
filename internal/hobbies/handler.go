package hobbies

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

type hobbiesRepo interface {
	Add(ctx context.Context, hobby *Hobby) (*Hobby, error)
	Update(ctx context.Context, hobby *Hobby) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Hobby, error)
}

type ListResponse struct {
	Hobbies []Hobby `json:"hobbies"`
	Total   int     `json:"total"`
}

type Handler struct {
	repo hobbiesRepo
}

func NewHandler(repo hobbiesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// SetupRoutes registers the hobbies endpoints, admin only.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	adminRouter := mainRouter.PathPrefix("/api/admin/hobbies").Subrouter()
	adminRouter.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("hobbies-list")
	adminRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("hobbies-add")
	adminRouter.HandleFunc("", handler.handleUpdate).Methods("PUT").Name("hobbies-update")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("hobbies-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "hobbiesHandler.list")
	defer span.End()

	allHobbies, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list hobbies error: %s", err)
		http.Error(w, "failed to get hobbies", http.StatusInternalServerError)
		return
	}

	if len(allHobbies) == 0 {
		allHobbies = []Hobby{}
	}

	respJson, err := json.Marshal(ListResponse{
		Hobbies: allHobbies,
		Total:   len(allHobbies),
	})
	if err != nil {
		log.Errorf("marshal hobbies error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "hobbiesHandler.add")
	defer span.End()

	var hobby Hobby
	if err := json.NewDecoder(r.Body).Decode(&hobby); err != nil {
		log.Errorf("add hobby, unmarshal json params: %s", err)
		http.Error(w, "add hobby failed", http.StatusBadRequest)
		return
	}

	if hobby.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}
	if hobby.DisplayOrder <= 0 {
		hobby.DisplayOrder = 1
	}

	addedHobby, err := handler.repo.Add(ctx, &hobby)
	if err != nil {
		log.Errorf("failed to add hobby [%s]: %s", hobby.Name, err)
		http.Error(w, "error, failed to add hobby", http.StatusInternalServerError)
		return
	}

	log.Debugf("new hobby added: [%s]: %d", addedHobby.Name, addedHobby.ID)
	pkg.WriteResponse(w, "", fmt.Sprintf("added:%d", addedHobby.ID))
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "hobbiesHandler.update")
	defer span.End()

	var hobby Hobby
	if err := json.NewDecoder(r.Body).Decode(&hobby); err != nil {
		log.Errorf("update hobby, unmarshal json params: %s", err)
		http.Error(w, "update hobby failed", http.StatusBadRequest)
		return
	}

	if hobby.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}
	if hobby.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &hobby); err != nil {
		if errors.Is(err, ErrHobbyNotFound) {
			http.Error(w, "hobby not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update hobby [%d]: %s", hobby.ID, err)
		http.Error(w, "error, failed to update hobby", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", hobby.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "hobbiesHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrHobbyNotFound) {
			http.Error(w, "hobby not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete hobby %d: %s", id, err)
		http.Error(w, "error, hobby not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
