package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/database"
	"github.com/westley-wess/portfolio/errs"
)

type cvLinker interface {
	URL(ctx context.Context) (string, error)
}

type profileHandler struct {
	responder  Responder
	logger     zerolog.Logger
	pictureURL string
	cv         cvLinker
}

func newProfileHandler(pictureURL string, cv cvLinker) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		pictureURL: pictureURL,
		cv:         cv,
	}
}

type ProfilePictureResponse struct {
	ImageURL string `json:"imageUrl"`
}

type ProfileCVResponse struct {
	CVURL string `json:"cvUrl"`
}

// @Summary Profile picture URL
// @Tags Profile
// @Produce json
// @Success 200 {object} ProfilePictureResponse
// @Router /profile/picture/ [get]
func (h profileHandler) getPicture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, ProfilePictureResponse{ImageURL: h.pictureURL})
	}
}

// getCV returns the CV link, presigned when the CV lives in S3
// @Summary CV download URL
// @Tags Profile
// @Produce json
// @Success 200 {object} ProfileCVResponse
// @Failure 502 {object} ErrorResponse "Bad Gateway - Could not sign the CV link"
// @Router /profile/cv/ [get]
func (h profileHandler) getCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cvURL, err := h.cv.URL(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUpstreamError("S3", 0, err))
			return
		}
		h.responder.WriteJSON(w, ProfileCVResponse{CVURL: cvURL})
	}
}

// @Summary Public test view
// @Tags Profile
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /public/ [get]
func (h profileHandler) getPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, MessageResponse{Message: "This is a public portfolio view!"})
	}
}

type quickLinkHandler struct {
	responder     Responder
	quickLinkRepo *database.QuickLinkRepo
}

func newQuickLinkHandler(quickLinkRepo *database.QuickLinkRepo) quickLinkHandler {
	logger := log.With().Str("handlerName", "quickLinkHandler").Logger()

	return quickLinkHandler{
		responder:     NewResponder(logger),
		quickLinkRepo: quickLinkRepo,
	}
}

// @Summary Quick links
// @Tags Profile
// @Produce json
// @Success 200 {array} models.QuickLink
// @Router /quicklinks/ [get]
func (h quickLinkHandler) getAllQuickLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := h.quickLinkRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "quick links", err))
			return
		}
		h.responder.WriteJSON(w, links)
	}
}
