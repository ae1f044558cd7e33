package api

import (
	"time"

	"github.com/westley-wess/portfolio/config"
	"github.com/westley-wess/portfolio/database"
)

// Services are the outbound integrations the handlers call
type Services struct {
	GitHub repoSyncer
	Mailer mailer
	SMS    smsSender
	CV     cvLinker
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, svc Services, c map[string]string, startupTime time.Time) *routeHandlers {
	owner := ownerProfile{
		Name:        config.GetString(c, "PROFILE_NAME", ""),
		Email:       config.GetString(c, "CONTACT_EMAIL", ""),
		Phone:       config.GetString(c, "PROFILE_PHONE", ""),
		GithubURL:   config.GetString(c, "PROFILE_GITHUB_URL", ""),
		LinkedInURL: config.GetString(c, "PROFILE_LINKEDIN_URL", ""),
		ResumeURL:   config.GetString(c, "PROFILE_CV_URL", ""),
	}

	return &routeHandlers{
		projectHandler:   newProjectHandler(database.ProjectRepo(), svc.GitHub, config.GetString(c, "GITHUB_DEFAULT_USERNAME", "")),
		contactHandler:   newContactHandler(database.ContactSubmissionRepo(), svc.Mailer, owner.Email),
		hireHandler:      newHireHandler(database.HireRequestRepo(), svc.Mailer, svc.SMS, owner),
		quickLinkHandler: newQuickLinkHandler(database.QuickLinkRepo()),
		profileHandler:   newProfileHandler(config.GetString(c, "PROFILE_PICTURE_URL", ""), svc.CV),
		healthHandler:    newHealthHandler(database, startupTime),
	}
}
