package testimonials

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

type testimonialsRepo interface {
	Add(ctx context.Context, t *Testimonial) (*Testimonial, error)
	SetStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, approvedOnly bool) ([]Testimonial, error)
}

type ListResponse struct {
	Testimonials []Testimonial `json:"testimonials"`
	Total        int           `json:"total"`
}

type Handler struct {
	repo testimonialsRepo
}

func NewHandler(repo testimonialsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/testimonials", handler.handleListApproved).Methods("GET", "OPTIONS").Name("testimonials-list")
	mainRouter.HandleFunc("/api/testimonials", handler.handleSubmit).Methods("POST").Name("testimonials-submit")

	adminRouter := mainRouter.PathPrefix("/api/admin/testimonials").Subrouter()
	adminRouter.HandleFunc("", handler.handleListAll).Methods("GET").Name("testimonials-list-all")
	adminRouter.HandleFunc("/{id}/status", handler.handleSetStatus).Methods("PUT").Name("testimonials-set-status")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("testimonials-delete")
}

func (handler *Handler) handleListApproved(w http.ResponseWriter, r *http.Request) {
	handler.writeList(w, r, true, "testimonialsHandler.listApproved")
}

func (handler *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	handler.writeList(w, r, false, "testimonialsHandler.listAll")
}

func (handler *Handler) writeList(w http.ResponseWriter, r *http.Request, approvedOnly bool, spanName string) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	testimonials, err := handler.repo.List(ctx, approvedOnly)
	if err != nil {
		log.Errorf("list testimonials error: %s", err)
		http.Error(w, "failed to get testimonials", http.StatusInternalServerError)
		return
	}

	if len(testimonials) == 0 {
		testimonials = []Testimonial{}
	}

	respJson, err := json.Marshal(ListResponse{
		Testimonials: testimonials,
		Total:        len(testimonials),
	})
	if err != nil {
		log.Errorf("marshal testimonials error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

// handleSubmit is the public endpoint: anyone can leave a testimonial,
// nothing shows up publicly before an admin approves it.
func (handler *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "testimonialsHandler.submit")
	defer span.End()

	var t Testimonial
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		log.Errorf("submit testimonial, unmarshal json params: %s", err)
		http.Error(w, "submit testimonial failed", http.StatusBadRequest)
		return
	}

	if t.Name == "" || t.Content == "" {
		http.Error(w, "error, name or content empty", http.StatusBadRequest)
		return
	}
	if t.Rating < 1 || t.Rating > 5 {
		t.Rating = 5
	}

	added, err := handler.repo.Add(ctx, &t)
	if err != nil {
		log.Errorf("failed to add testimonial from [%s]: %s", t.Name, err)
		http.Error(w, "error, failed to submit testimonial", http.StatusInternalServerError)
		return
	}

	log.Debugf("new testimonial submitted: [%s]: %d", added.Name, added.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(fmt.Sprintf(`{"id":%d,"status":"%s"}`, added.ID, added.Status)), http.StatusCreated)
}

func (handler *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "testimonialsHandler.setStatus")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var statusReq struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		log.Errorf("set testimonial status, unmarshal json params: %s", err)
		http.Error(w, "set status failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.SetStatus(ctx, id, statusReq.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "error, invalid status", http.StatusBadRequest)
		case errors.Is(err, ErrTestimonialNotFound):
			http.Error(w, "testimonial not found", http.StatusNotFound)
		default:
			log.Errorf("failed to set testimonial %d status: %s", id, err)
			http.Error(w, "error, failed to set status", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%d", id))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "testimonialsHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTestimonialNotFound) {
			http.Error(w, "testimonial not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete testimonial %d: %s", id, err)
		http.Error(w, "error, testimonial not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%d", id))
}
