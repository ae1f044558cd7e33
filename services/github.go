package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/catalog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultGitHubAPI = "https://api.github.com"
	reposPerPage     = 100
	maxRepoPages     = 10
)

// GitHubRepo is the subset of the GitHub repository payload the sync uses
type GitHubRepo struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    *string   `json:"homepage"`
	Language    *string   `json:"language"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	HasPages    bool      `json:"has_pages"`
	PushedAt    time.Time `json:"pushed_at"`
}

// ToProject converts the repository into a synced catalog entry
func (r GitHubRepo) ToProject(owner string) catalog.Project {
	p := catalog.FromRepositoryName(r.Name, owner)
	if !r.HasPages {
		p.DemoURL = ""
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) != "" {
		p.Description = strings.TrimSpace(*r.Description)
	}
	if r.Language != nil && *r.Language != "" {
		p.TechStack = *r.Language
	}
	if r.HTMLURL != "" {
		p.GithubURL = r.HTMLURL
	}
	if r.Homepage != nil && strings.TrimSpace(*r.Homepage) != "" {
		p.DemoURL = strings.TrimSpace(*r.Homepage)
	}
	return p
}

// GitHubError is a non-200 answer from the GitHub API
type GitHubError struct {
	StatusCode int
	Message    string
}

func (e *GitHubError) Error() string {
	return fmt.Sprintf("github api error (status %d): %s", e.StatusCode, e.Message)
}

type GitHubOptions struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	CacheTTL          time.Duration
	CacheSize         int
	RequestsPerMinute int
}

// GitHubClient lists public repositories. Results are cached per user for
// CacheTTL, concurrent lookups of the same user share one upstream call and
// upstream calls are throttled to RequestsPerMinute.
type GitHubClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *expirable.LRU[string, []GitHubRepo]
	group      singleflight.Group
	logger     zerolog.Logger
}

func NewGitHubClient(opts GitHubOptions) *GitHubClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGitHubAPI
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 30
	}

	httpClient := &http.Client{}
	if opts.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	}
	httpClient.Timeout = opts.Timeout

	return &GitHubClient{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60), 1),
		cache:      expirable.NewLRU[string, []GitHubRepo](opts.CacheSize, nil, opts.CacheTTL),
		logger:     log.With().Str("service", "github").Logger(),
	}
}

// ListRepos returns every public repository of username, most recently pushed first
func (c *GitHubClient) ListRepos(ctx context.Context, username string) ([]GitHubRepo, error) {
	key := strings.ToLower(username)
	if repos, ok := c.cache.Get(key); ok {
		githubCacheHits.Inc()
		return repos, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		repos, err := c.fetchAll(ctx, username)
		if err != nil {
			return nil, err
		}
		c.cache.Add(key, repos)
		return repos, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]GitHubRepo), nil
}

func (c *GitHubClient) fetchAll(ctx context.Context, username string) ([]GitHubRepo, error) {
	all := []GitHubRepo{}
	for page := 1; page <= maxRepoPages; page++ {
		repos, err := c.fetchPage(ctx, username, page)
		if err != nil {
			return nil, err
		}
		all = append(all, repos...)
		if len(repos) < reposPerPage {
			break
		}
	}

	c.logger.Debug().Str("username", username).Int("repos", len(all)).Msg("Fetched GitHub repositories")
	return all, nil
}

func (c *GitHubClient) fetchPage(ctx context.Context, username string, page int) ([]GitHubRepo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for github rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=%d&sort=pushed",
		c.baseURL, url.PathEscape(username), reposPerPage, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		githubRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch github repos page %d: %w", page, err)
	}
	defer resp.Body.Close()
	githubRequests.WithLabelValues(fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var payload struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
		c.logger.Error().Int("status", resp.StatusCode).Str("username", username).Msg("GitHub API error")
		return nil, &GitHubError{StatusCode: resp.StatusCode, Message: msg}
	}

	var repos []GitHubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode github repos page %d: %w", page, err)
	}
	return repos, nil
}

// SyncProjects lists username's repositories as catalog entries, skipping
// forks and archived repositories
func (c *GitHubClient) SyncProjects(ctx context.Context, username string) ([]catalog.Project, error) {
	repos, err := c.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	projects := make([]catalog.Project, 0, len(repos))
	for _, r := range repos {
		if r.Fork || r.Archived {
			continue
		}
		projects = append(projects, r.ToProject(username))
	}
	return projects, nil
}
