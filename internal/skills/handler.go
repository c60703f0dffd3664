package skills

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

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=skills_test

type skillsRepo interface {
	Add(ctx context.Context, skill *Skill) (*Skill, error)
	Update(ctx context.Context, skill *Skill) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Skill, error)
}

type ListResponse struct {
	Skills []Skill `json:"skills"`
	Total  int     `json:"total"`
}

type Handler struct {
	repo skillsRepo
}

func NewHandler(repo skillsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// SetupRoutes registers the skills endpoints. The whole surface is admin
// only, the public site gets skills embedded in its rendered pages.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	adminRouter := mainRouter.PathPrefix("/api/admin/skills").Subrouter()
	adminRouter.HandleFunc("", handler.handleList).Methods("GET", "OPTIONS").Name("skills-list")
	adminRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("skills-add")
	adminRouter.HandleFunc("", handler.handleUpdate).Methods("PUT").Name("skills-update")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("skills-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "skillsHandler.list")
	defer span.End()

	allSkills, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list skills error: %s", err)
		http.Error(w, "failed to get skills", http.StatusInternalServerError)
		return
	}

	if len(allSkills) == 0 {
		allSkills = []Skill{}
	}

	respJson, err := json.Marshal(ListResponse{
		Skills: allSkills,
		Total:  len(allSkills),
	})
	if err != nil {
		log.Errorf("marshal skills error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "skillsHandler.add")
	defer span.End()

	var skill Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		log.Errorf("add skill, unmarshal json params: %s", err)
		http.Error(w, "add skill failed", http.StatusBadRequest)
		return
	}

	if skill.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}
	if skill.DisplayOrder <= 0 {
		skill.DisplayOrder = 1
	}

	addedSkill, err := handler.repo.Add(ctx, &skill)
	if err != nil {
		log.Errorf("failed to add skill [%s]: %s", skill.Name, err)
		http.Error(w, "error, failed to add skill", http.StatusInternalServerError)
		return
	}

	log.Debugf("new skill added: [%s]: %d", addedSkill.Name, addedSkill.ID)
	pkg.WriteResponse(w, "", fmt.Sprintf("added:%d", addedSkill.ID))
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "skillsHandler.update")
	defer span.End()

	var skill Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		log.Errorf("update skill, unmarshal json params: %s", err)
		http.Error(w, "update skill failed", http.StatusBadRequest)
		return
	}

	if skill.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}
	if skill.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &skill); err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			http.Error(w, "skill not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update skill [%d]: %s", skill.ID, err)
		http.Error(w, "error, failed to update skill", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", skill.ID))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "skillsHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			http.Error(w, "skill not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete skill %d: %s", id, err)
		http.Error(w, "error, skill not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
