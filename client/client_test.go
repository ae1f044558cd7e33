package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westley-wess/portfolio/catalog"
)

func TestCredentialsAreLookedUpPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	token := ""
	c := New(srv.URL+"/", WithCredentials(func(context.Context) (string, error) { return token, nil }))

	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	token = "abc"
	_, err = c.ListProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, seen)
}

func TestCredentialLookupFailure(t *testing.T) {
	c := New("http://127.0.0.1:0", WithCredentials(func(context.Context) (string, error) {
		return "", errors.New("keyring locked")
	}))
	_, err := c.QuickLinks(context.Background())
	assert.ErrorContains(t, err, "keyring locked")
}

func TestErrorMessageExtraction(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"error field":   {http.StatusBadRequest, `{"error":"GitHub username is required","status":"error"}`, "GitHub username is required"},
		"detail field":  {http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`, "Authentication credentials were not provided."},
		"message field": {http.StatusBadRequest, `{"message":"Error: smtp down"}`, "Error: smtp down"},
		"plain body":    {http.StatusBadGateway, `upstream exploded`, "Bad Gateway"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).SyncGitHub(context.Background(), "octo")
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestSyncGitHubReturnsRawElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/sync-github/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"octo"}`, string(body))
		_, _ = w.Write([]byte(`{"projects":["bare-repo",{"title":"tool","description":"d","tech_stack":"Go"}]}`))
	}))
	defer srv.Close()

	raw, err := New(srv.URL).SyncGitHub(context.Background(), "octo")
	require.NoError(t, err)
	require.Len(t, raw, 2)

	projects, err := catalog.NormalizeSynced(raw, "octo")
	require.NoError(t, err)
	assert.Equal(t, "bare-repo", projects[0].Title)
	assert.Equal(t, "tool", projects[1].Title)
}

func TestSubmitHireAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/hire/", func(w http.ResponseWriter, r *http.Request) {
		var req HireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1500.25, req.OfferedSalary)
		_, _ = w.Write([]byte(`{"message":"Hire request sent successfully"}`))
	})
	mux.HandleFunc("/profile/cv/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cvUrl":"https://example.com/cv.pdf"}`))
	})
	mux.HandleFunc("/profile/picture/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imageUrl":"https://example.com/me.png"}`))
	})
	mux.HandleFunc("/contact/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"x"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	msg, err := c.SubmitHire(ctx, HireRequest{ApplicantName: "Grace", OfferedSalary: 1500.25})
	require.NoError(t, err)
	assert.Equal(t, "Hire request sent successfully", msg)

	cv, err := c.ProfileCV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/cv.pdf", cv)

	pic, err := c.ProfilePicture(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.png", pic)

	require.NoError(t, c.SubmitContact(ctx, ContactSubmission{Name: "Ada", Email: "[email protected]", Message: "hi"}))
}

func TestClientSatisfiesCatalogSource(t *testing.T) {
	var _ catalog.Source = New("http://localhost")
}
