package api

import (
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/westley-wess/portfolio/errs"
	"github.com/westley-wess/portfolio/models"
)

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// maxSalary is the largest value numeric(12,2) holds
const maxSalary = 9999999999.99

func requireText(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0 && min > 0:
		return errs.NewMissingRequiredFieldError(field)
	case n < min:
		return errs.NewInvalidFieldError(field, "must be at least "+strconv.Itoa(min)+" characters")
	case max > 0 && n > max:
		return errs.NewInvalidFieldError(field, "must be at most "+strconv.Itoa(max)+" characters")
	}
	return nil
}

func validateEmail(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return errs.NewInvalidFieldError(field, "enter a valid email address")
	}
	return nil
}

func validateOptionalURL(field string, value *string) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	u, err := url.ParseRequestURI(strings.TrimSpace(*value))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewInvalidFieldError(field, "enter a valid URL")
	}
	return nil
}

func validateProject(p projectRequest) error {
	if err := requireText("title", p.Title, 5, 100); err != nil {
		return err
	}
	if err := requireText("description", p.Description, 10, 0); err != nil {
		return err
	}
	if err := requireText("tech_stack", p.TechStack, 1, 200); err != nil {
		return err
	}
	if err := validateOptionalURL("github_url", p.GithubURL); err != nil {
		return err
	}
	if err := validateOptionalURL("demo_url", p.DemoURL); err != nil {
		return err
	}
	switch p.Source {
	case "", models.SourceManual, models.SourceGitHub:
	default:
		return errs.NewInvalidFieldError("source", "must be MANUAL or GITHUB")
	}
	return nil
}

func validateContact(c contactRequest) error {
	if err := requireText("name", c.Name, 1, 100); err != nil {
		return err
	}
	if err := validateEmail("email", c.Email); err != nil {
		return err
	}
	if err := requireText("message", c.Message, 1, 0); err != nil {
		return err
	}
	return requireText("submission_type", c.SubmissionType, 0, 20)
}

func validateHire(h hireRequest) error {
	if err := requireText("applicant_name", h.ApplicantName, 1, 100); err != nil {
		return err
	}
	if err := validateEmail("applicant_email", h.ApplicantEmail); err != nil {
		return err
	}
	if strings.TrimSpace(h.ApplicantPhone) == "" {
		return errs.NewMissingRequiredFieldError("applicant_phone")
	}
	if !phonePattern.MatchString(h.ApplicantPhone) {
		return errs.NewInvalidFieldError("applicant_phone", "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed.")
	}
	if err := requireText("company_name", h.CompanyName, 1, 150); err != nil {
		return err
	}
	if err := requireText("role", h.Role, 1, 100); err != nil {
		return err
	}
	if h.OfferedSalary == nil {
		return errs.NewMissingRequiredFieldError("offered_salary")
	}
	salary := *h.OfferedSalary
	switch {
	case salary < 0:
		return errs.NewInvalidFieldError("offered_salary", "must be greater than or equal to 0")
	case salary > maxSalary:
		return errs.NewInvalidFieldError("offered_salary", "must have no more than 12 digits")
	case math.Abs(salary*100-math.Round(salary*100)) > 1e-6:
		return errs.NewInvalidFieldError("offered_salary", "must have no more than 2 decimal places")
	}
	return nil
}
