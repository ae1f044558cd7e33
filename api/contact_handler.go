package api

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/database"
	"github.com/westley-wess/portfolio/models"
	"github.com/westley-wess/portfolio/services"
)

type mailer interface {
	Send(ctx context.Context, email services.Email) error
}

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactSubmissionRepo
	mailer      mailer
	ownerEmail  string
}

func newContactHandler(contactRepo *database.ContactSubmissionRepo, mailer mailer, ownerEmail string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		mailer:      mailer,
		ownerEmail:  ownerEmail,
	}
}

type contactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	SubmissionType string `json:"submission_type"`
}

// createSubmission stores a contact form message and notifies the owner
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body contactRequest true "Contact message"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid submission"
// @Router /contact/ [post]
func (h contactHandler) createSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := h.responder.decodeJSON(w, r, &req, "contact submission", false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateContact(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submission := models.ContactSubmission{
			Name:           strings.TrimSpace(req.Name),
			Email:          strings.TrimSpace(req.Email),
			Message:        strings.TrimSpace(req.Message),
			SubmissionType: strings.TrimSpace(req.SubmissionType),
		}
		if err := h.contactRepo.Add(&submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact submission", err))
			return
		}
		submissionsReceived.WithLabelValues("contact").Inc()

		if h.ownerEmail != "" {
			err := h.mailer.Send(r.Context(), services.Email{
				To:      []string{h.ownerEmail},
				Subject: fmt.Sprintf("New Contact Form Submission from %s", submission.Name),
				Html: fmt.Sprintf("<p>Message: %s</p><p>Email: %s</p>",
					html.EscapeString(submission.Message), html.EscapeString(submission.Email)),
				ReplyTo: submission.Email,
			})
			if err != nil {
				h.logger.Warn().Err(err).Str("submissionID", submission.ID.String()).Msg("Failed to notify owner of contact submission")
			}
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, submission)
	}
}

// getAllSubmissions lists contact submissions, newest first. Admin only.
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Success 200 {array} models.ContactSubmission
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /contact/ [get]
func (h contactHandler) getAllSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := h.contactRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submissions", err))
			return
		}
		h.responder.WriteJSON(w, submissions)
	}
}
