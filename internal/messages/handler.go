package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/dkoladic/portfolio-backend/internal/telemetry/metrics"
	"github.com/dkoladic/portfolio-backend/internal/telemetry/tracing"
	"github.com/dkoladic/portfolio-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	maxSubjectLength = 255
	maxBodyLength    = 5000
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=messages_test

type messagesRepo interface {
	Add(ctx context.Context, message *Message) (*Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Message, error)
}

type ListResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo           messagesRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo messagesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/api/messages", handler.handleSubmit).Methods("POST", "OPTIONS").Name("messages-submit")

	adminRouter := mainRouter.PathPrefix("/api/admin/messages").Subrouter()
	adminRouter.HandleFunc("", handler.handleList).Methods("GET").Name("messages-list")
	adminRouter.HandleFunc("/{id}/read", handler.handleMarkRead).Methods("PUT").Name("messages-mark-read")
	adminRouter.HandleFunc("/{id}", handler.handleDelete).Methods("DELETE").Name("messages-delete")
}

// handleSubmit is the public contact form endpoint.
func (handler *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "messagesHandler.submit")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var message Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		log.Errorf("submit message, unmarshal json params: %s", err)
		http.Error(w, "submit message failed", http.StatusBadRequest)
		return
	}

	if message.Name == "" || message.Subject == "" || message.Body == "" {
		http.Error(w, "error, name, subject and body are required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(message.Email); err != nil {
		http.Error(w, "error, invalid email", http.StatusBadRequest)
		return
	}
	if len(message.Subject) > maxSubjectLength || len(message.Body) > maxBodyLength {
		http.Error(w, "error, message too long", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, &message)
	if err != nil {
		log.Errorf("failed to add contact message from [%s]: %s", message.Email, err)
		http.Error(w, "error, failed to submit message", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterContactMessages.Inc()
	}

	log.Debugf("new contact message: [%s] %s", added.Email, added.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, []byte(fmt.Sprintf(`{"id":"%s"}`, added.ID)), http.StatusCreated)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "messagesHandler.list")
	defer span.End()

	messages, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list messages error: %s", err)
		http.Error(w, "failed to get messages", http.StatusInternalServerError)
		return
	}

	if len(messages) == 0 {
		messages = []Message{}
	}

	respJson, err := json.Marshal(ListResponse{
		Messages: messages,
		Total:    len(messages),
	})
	if err != nil {
		log.Errorf("marshal messages error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "messagesHandler.markRead")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]

	if err := handler.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to mark message %s read: %s", id, err)
		http.Error(w, "error, failed to mark message read", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("updated:%s", id))
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "messagesHandler.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete message %s: %s", id, err)
		http.Error(w, "error, message not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, "", fmt.Sprintf("deleted:%s", id))
}
