package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("project not found")))
	assert.True(t, IsBadRequest(NewBadRequestError("bad")))
	assert.True(t, IsConflict(NewConflictError("dup")))
	assert.True(t, IsUnauthorized(Unauthorized))
	assert.Equal(t, "project not found", NewNotFoundError("project not found").Error())
}

func TestNewDatabaseError(t *testing.T) {
	notFound := NewDatabaseError("find", "project", gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
	assert.True(t, IsNotFound(notFound))

	dup := NewDatabaseError("create", "project", errors.New(`ERROR: duplicate key value violates unique constraint "projects_title_key"`))
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	generic := NewDatabaseError("create", "project", errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	assert.Contains(t, generic.GetFullError(), "boom")
}

func TestNewUpstreamError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewUpstreamError("GitHub", http.StatusNotFound, nil).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, NewUpstreamError("GitHub", http.StatusForbidden, nil).StatusCode)
	assert.Equal(t, http.StatusBadGateway, NewUpstreamError("GitHub", 0, errors.New("dial tcp")).StatusCode)
	assert.True(t, IsRateLimitExceeded(NewUpstreamError("GitHub", http.StatusTooManyRequests, nil)))
}

func TestWrappedApiErrKeepsFullChain(t *testing.T) {
	inner := NewInternalErrorWithCause("sync failed", fmt.Errorf("decode: %w", errors.New("unexpected EOF")))
	outer := &ApiErr{StatusCode: 502, err: ErrUpstream, Cause: inner}
	assert.Equal(t, "upstream service error -> sync failed -> decode: unexpected EOF", outer.GetFullError())
	assert.True(t, IsConfigMissing(NewConfigMissingError("JWT_SECRET")))
}
