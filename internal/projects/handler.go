package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dkoladic/portfolio-backend/internal/cache"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const cacheKey = "projects"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=projects_test

type projectsRepo interface {
	Add(ctx context.Context, project *Project) (*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Project, error)
}

type ListResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo          projectsRepo
	responseCache *cache.ResponseCache
}

func NewHandler(repo projectsRepo, responseCache *cache.ResponseCache) *Handler {
	return &Handler{
		repo:          repo,
		responseCache: responseCache,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/projects", handler.handleList).Methods("GET", "OPTIONS").Name("projects-list")

	adminRouter := mainRouter.PathPrefix("/api/admin/projects").Subrouter()
	adminRouter.HandleFunc("", handler.handleAdd).Methods("POST", "OPTIONS").Name("projects-add")
	adminRouter.HandleFunc("", handler.handleUpdate).Methods("PUT").Name("projects-update")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("projects-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "projectsHandler.list")
	defer span.End()

	if cached, ok := handler.responseCache.Get(cacheKey); ok {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	projects, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list projects error: %s", err)
		http.Error(w, "failed to get projects", http.StatusInternalServerError)
		return
	}

	if len(projects) == 0 {
		projects = []Project{}
	}

	respJson, err := json.Marshal(ListResponse{
		Projects: projects,
		Total:    len(projects),
	})
	if err != nil {
		log.Errorf("marshal projects error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Set(cacheKey, respJson)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "projectsHandler.add")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var project Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("add project, unmarshal json params: %s", err)
		http.Error(w, "add project failed", http.StatusBadRequest)
		return
	}

	if project.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}
	if project.Status == "" {
		project.Status = "in-progress"
	}

	addedProject, err := handler.repo.Add(ctx, &project)
	if err != nil {
		log.Errorf("failed to add project [%s]: %s", project.Title, err)
		http.Error(w, "error, failed to add project", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Invalidate(cacheKey)

	log.Debugf("new project added: [%s]: %d", addedProject.Title, addedProject.ID)
	pkg.WriteResponse(w, "", fmt.Sprintf("added:%d", addedProject.ID))
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "projectsHandler.update")
	defer span.End()

	var project Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		log.Errorf("update project, unmarshal json params: %s", err)
		http.Error(w, "update project failed", http.StatusBadRequest)
		return
	}

	if project.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}
	if project.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &project); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update project [%d]: %s", project.ID, err)
		http.Error(w, "error, failed to update project", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Invalidate(cacheKey)

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", project.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "projectsHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete project %d: %s", id, err)
		http.Error(w, "error, project not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	handler.responseCache.Invalidate(cacheKey)

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
