// Package catalog builds the project list shown to visitors: curated projects
// from the API followed by GitHub repositories that are not curated yet.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	SourceManual = "MANUAL"
	SourceGitHub = "GITHUB"

	importedDescription = "Imported from GitHub"
	importedTechStack   = "Auto-detected"
)

// Project is one entry of the catalog. Curated projects carry a server id;
// synced ones may not have an id until Merge assigns one.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
	GithubURL   string `json:"github_url,omitempty"`
	DemoURL     string `json:"demo_url,omitempty"`
	Source      string `json:"source,omitempty"`
}

// NormalizeSynced converts the raw GitHub sync payload into projects. Each
// element is either a bare repository name or a project object; names are
// expanded with owner's GitHub and GitHub Pages links.
func NormalizeSynced(raw []json.RawMessage, owner string) ([]Project, error) {
	projects := make([]Project, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 {
			return nil, fmt.Errorf("synced project %d: empty element", i)
		}

		switch elem[0] {
		case '"':
			var name string
			if err := json.Unmarshal(elem, &name); err != nil {
				return nil, fmt.Errorf("synced project %d: %w", i, err)
			}
			projects = append(projects, FromRepositoryName(name, owner))
		case '{':
			var p Project
			if err := json.Unmarshal(elem, &p); err != nil {
				return nil, fmt.Errorf("synced project %d: %w", i, err)
			}
			if p.Source == "" {
				p.Source = SourceGitHub
			}
			projects = append(projects, p)
		default:
			return nil, fmt.Errorf("synced project %d: unsupported element %s", i, truncate(string(elem), 32))
		}
	}
	return projects, nil
}

// FromRepositoryName builds the placeholder project for a repository known
// only by name.
func FromRepositoryName(name, owner string) Project {
	p := Project{
		Title:       name,
		Description: importedDescription,
		TechStack:   importedTechStack,
		Source:      SourceGitHub,
	}
	if owner != "" {
		p.GithubURL = fmt.Sprintf("https://github.com/%s/%s", owner, name)
		p.DemoURL = fmt.Sprintf("https://%s.github.io/%s/index.html", strings.ToLower(owner), name)
	}
	return p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
