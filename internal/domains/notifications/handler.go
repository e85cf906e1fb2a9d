package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/auth"
	"github.com/sangkips/flight-notify-service/internal/dispatch"
	"github.com/sangkips/flight-notify-service/internal/domains/templates"
	"github.com/sangkips/flight-notify-service/internal/gateway"
	"github.com/sangkips/flight-notify-service/internal/handlers"
	"github.com/sangkips/flight-notify-service/internal/queue"
)

type SMSRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"notblank"`
	Message     string `json:"message" validate:"notblank"`
}

type EmailRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"notblank"`
}

type BulkResponse struct {
	Success bool            `json:"success"`
	Results dispatch.Result `json:"results"`
}

type DispatchJobRequest struct {
	Contacts       []dispatch.Contact `json:"contacts" validate:"required,min=1"`
	Message        string             `json:"message" validate:"notblank"`
	SendSMS        bool               `json:"sendSMS"`
	SendEmail      bool               `json:"sendEmail"`
	Subject        string             `json:"subject"`
	TemplateID     string             `json:"templateId"`
	TemplateName   string             `json:"templateName"`
	FlightNumber   string             `json:"flightNumber"`
	EnglishContent string             `json:"englishContent"`
}

type DispatchJobResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

type Handler struct {
	svc            *Service
	uploadDir      string
	maxUploadBytes int64
}

func NewHandler(svc *Service, uploadDir string, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, uploadDir: uploadDir, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterNotificationRoutes(r chi.Router) {
	r.Post("/send-sms", h.sendSMS)
	r.Post("/send-email", h.sendEmail)
	r.Post("/send-bulk", h.sendBulk)
	r.Post("/render", h.render)
	r.Post("/dispatch-jobs", h.enqueueDispatch)
}

// The send endpoints answer failures with the gateway result shape so the
// UI can show the reason.
func respondWithFailure(w http.ResponseWriter, status int, msg string) {
	handlers.RespondWithJSON(w, status, gateway.Result{Success: false, Error: msg})
}

func resultStatus(res gateway.Result) int {
	if res.Success {
		return http.StatusOK
	}
	return http.StatusBadGateway
}

func (h *Handler) sendSMS(w http.ResponseWriter, r *http.Request) {
	var req SMSRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		respondWithFailure(w, http.StatusBadRequest, "Phone number and message are required")
		return
	}

	res := h.svc.SendSMS(r.Context(), strings.TrimSpace(req.PhoneNumber), req.Message)
	handlers.RespondWithJSON(w, resultStatus(res), res)
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		respondWithFailure(w, http.StatusBadRequest, "A valid email and message are required")
		return
	}

	res := h.svc.SendEmail(r.Context(), strings.TrimSpace(req.Email), req.Subject, req.Message)
	handlers.RespondWithJSON(w, resultStatus(res), res)
}

func formBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(r.FormValue(key)))
	return b
}

func (h *Handler) sendBulk(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondWithFailure(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	message := r.FormValue("messageContent")
	opts := dispatch.Options{
		SendSMS:   formBool(r, "sendSMS"),
		SendEmail: formBool(r, "sendEmail"),
		Subject:   r.FormValue("subject"),
	}
	if strings.TrimSpace(message) == "" {
		respondWithFailure(w, http.StatusBadRequest, "messageContent is required")
		return
	}
	if !opts.SendSMS && !opts.SendEmail {
		respondWithFailure(w, http.StatusBadRequest, "Select at least one of sendSMS or sendEmail")
		return
	}

	contacts, err := h.contacts(r)
	if err != nil {
		respondWithFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	meta := HistoryMeta{
		TemplateID:     r.FormValue("templateId"),
		TemplateName:   r.FormValue("templateName"),
		FlightNumber:   r.FormValue("flightNumber"),
		EnglishContent: r.FormValue("englishContent"),
		SentBy:         auth.UserID(r.Context()),
	}

	// A client disconnect must not cut a bulk run short.
	ctx := context.WithoutCancel(r.Context())
	result := h.svc.SendBulk(ctx, contacts, message, opts, meta)

	handlers.RespondWithJSON(w, http.StatusOK, BulkResponse{Success: true, Results: result})
}

// contacts reads the uploaded CSV, or a single contact from the name, phone
// and email form fields when no file was sent.
func (h *Handler) contacts(r *http.Request) ([]dispatch.Contact, error) {
	file, _, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		c := dispatch.Contact{
			Name:  strings.TrimSpace(r.FormValue("name")),
			Phone: strings.TrimSpace(r.FormValue("phone")),
			Email: strings.TrimSpace(r.FormValue("email")),
		}
		if c.Phone == "" && c.Email == "" {
			return nil, errors.New("a CSV file or a phone/email contact is required")
		}
		return []dispatch.Contact{c}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp(h.uploadDir, "contacts-*.csv")
	if err != nil {
		log.Error().Err(err).Str("dir", h.uploadDir).Msg("Failed to create upload file")
		return nil, errors.New("failed to store upload")
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			log.Warn().Err(err).Str("file", tmp.Name()).Msg("Failed to remove upload file")
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return dispatch.ParseContacts(tmp)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	resp, err := h.svc.Render(r.Context(), req)
	if err != nil {
		var verr *handlers.ValidationError
		switch {
		case errors.Is(err, templates.ErrTemplateNotFound):
			handlers.RespondWithError(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Template with ID "+req.TemplateID+" not found")
		case errors.Is(err, ErrTemplatesUnavailable):
			handlers.RespondWithError(w, http.StatusServiceUnavailable, "TEMPLATES_UNAVAILABLE", "Stored templates are not available on this server")
		case errors.As(err, &verr):
			handlers.RespondWithValidationError(w, err)
		default:
			log.Error().Err(err).Msg("Failed to render message")
			handlers.RespondWithError(w, http.StatusInternalServerError, "RENDER_FAILED", "Failed to render message")
		}
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) enqueueDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	job, err := h.svc.EnqueueDispatch(r.Context(), req, auth.UserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrAsyncDisabled):
			handlers.RespondWithError(w, http.StatusServiceUnavailable, "ASYNC_DISABLED", err.Error())
		case errors.Is(err, queue.ErrInvalidJob):
			handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_JOB", err.Error())
		default:
			log.Error().Err(err).Msg("Failed to publish dispatch job")
			handlers.RespondWithError(w, http.StatusInternalServerError, "DISPATCH_ENQUEUE_FAILED", "Failed to queue dispatch job")
		}
		return
	}

	log.Info().Str("job_id", job.JobID).Int("contacts", len(job.Contacts)).Msg("Dispatch job queued")
	handlers.RespondWithJSON(w, http.StatusAccepted, DispatchJobResponse{JobID: job.JobID, Status: "queued"})
}
