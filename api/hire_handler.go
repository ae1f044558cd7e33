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
	"github.com/westley-wess/portfolio/errs"
	"github.com/westley-wess/portfolio/models"
	"github.com/westley-wess/portfolio/services"
)

type smsSender interface {
	Send(ctx context.Context, to, body string) error
}

// ownerProfile is the site owner's contact card appended to hire notifications
type ownerProfile struct {
	Name        string
	Email       string
	Phone       string
	GithubURL   string
	LinkedInURL string
	ResumeURL   string
}

type hireHandler struct {
	responder Responder
	logger    zerolog.Logger
	hireRepo  *database.HireRequestRepo
	mailer    mailer
	sms       smsSender
	owner     ownerProfile
}

func newHireHandler(hireRepo *database.HireRequestRepo, mailer mailer, sms smsSender, owner ownerProfile) hireHandler {
	logger := log.With().Str("handlerName", "hireHandler").Logger()

	return hireHandler{
		responder: NewResponder(logger),
		logger:    logger,
		hireRepo:  hireRepo,
		mailer:    mailer,
		sms:       sms,
		owner:     owner,
	}
}

type hireRequest struct {
	ApplicantName  string   `json:"applicant_name"`
	ApplicantEmail string   `json:"applicant_email"`
	ApplicantPhone string   `json:"applicant_phone"`
	CompanyName    string   `json:"company_name"`
	Role           string   `json:"role"`
	OfferedSalary  *float64 `json:"offered_salary"`
	Message        *string  `json:"message"`
}

// createHireRequest stores a hire request, emails the owner and confirms to
// the applicant
// @Summary Submit hire request
// @Tags Hire
// @Accept json
// @Produce json
// @Param request body hireRequest true "Hire request"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid request"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Owner notification failed"
// @Router /hire/ [post]
func (h hireHandler) createHireRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hireRequest
		if err := h.responder.decodeJSON(w, r, &req, "hire request", false); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateHire(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hire := models.HireRequest{
			ApplicantName:  strings.TrimSpace(req.ApplicantName),
			ApplicantEmail: strings.TrimSpace(req.ApplicantEmail),
			ApplicantPhone: req.ApplicantPhone,
			CompanyName:    strings.TrimSpace(req.CompanyName),
			Role:           strings.TrimSpace(req.Role),
			OfferedSalary:  *req.OfferedSalary,
			Message:        trimmedOrNil(req.Message),
		}
		if err := h.hireRepo.Add(&hire); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "hire request", err))
			return
		}
		submissionsReceived.WithLabelValues("hire").Inc()

		ctx := r.Context()
		if err := h.notifyOwner(ctx, hire); err != nil {
			h.responder.WriteError(w, errs.NewUpstreamError("email", 0, err))
			return
		}

		if err := h.confirmToApplicant(ctx, hire); err != nil {
			h.logger.Warn().Err(err).Str("hireRequestID", hire.ID.String()).Msg("Failed to send hire confirmation to applicant")
		}

		if h.owner.Phone != "" {
			body := fmt.Sprintf("New hire request from %s (%s) for %s", hire.ApplicantName, hire.CompanyName, hire.Role)
			if err := h.sms.Send(ctx, h.owner.Phone, body); err != nil {
				h.logger.Warn().Err(err).Str("hireRequestID", hire.ID.String()).Msg("Failed to send hire request SMS")
			}
		}

		h.responder.WriteJSON(w, MessageResponse{Message: "Hire request sent successfully"})
	}
}

func (h hireHandler) notifyOwner(ctx context.Context, hire models.HireRequest) error {
	if h.owner.Email == "" {
		return errs.NewConfigMissingError("CONTACT_EMAIL")
	}

	message := ""
	if hire.Message != nil {
		message = *hire.Message
	}

	var b strings.Builder
	b.WriteString("<h3>Hire Request Details</h3><ul>")
	for _, row := range [][2]string{
		{"Applicant Name", hire.ApplicantName},
		{"Applicant Email", hire.ApplicantEmail},
		{"Applicant Phone", hire.ApplicantPhone},
		{"Company", hire.CompanyName},
		{"Role", hire.Role},
		{"Offered Salary", fmt.Sprintf("%.2f", hire.OfferedSalary)},
	} {
		fmt.Fprintf(&b, "<li>%s: %s</li>", row[0], html.EscapeString(row[1]))
	}
	fmt.Fprintf(&b, "</ul><p>Message:<br>%s</p>", html.EscapeString(message))

	b.WriteString("<h3>Profile</h3><ul>")
	for _, row := range [][2]string{
		{"Phone", orNotProvided(h.owner.Phone)},
		{"GitHub", orNotProvided(h.owner.GithubURL)},
		{"LinkedIn", orNotProvided(h.owner.LinkedInURL)},
		{"Resume", orNotProvided(h.owner.ResumeURL)},
	} {
		fmt.Fprintf(&b, "<li>%s: %s</li>", row[0], html.EscapeString(row[1]))
	}
	b.WriteString("</ul>")

	return h.mailer.Send(ctx, services.Email{
		To:      []string{h.owner.Email},
		Subject: fmt.Sprintf("New Hire Request from %s", hire.CompanyName),
		Html:    b.String(),
		ReplyTo: hire.ApplicantEmail,
	})
}

func (h hireHandler) confirmToApplicant(ctx context.Context, hire models.HireRequest) error {
	owner := h.owner.Name
	if owner == "" {
		owner = "the site owner"
	}

	return h.mailer.Send(ctx, services.Email{
		To:      []string{hire.ApplicantEmail},
		Subject: "Your hire request was received!",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for contacting %s. Your hire request has been received successfully and you will hear back shortly.</p>",
			html.EscapeString(hire.ApplicantName), html.EscapeString(owner)),
	})
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
