package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "abc",
		"DEBUG":    "true",
		"TIMEOUT":  "45",
		"TTL":      "5m",
		"ORIGINS":  "http://a.test, ,http://b.test",
		"EMPTY":    "",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.True(t, GetBool(c, "DEBUG", false))
	assert.True(t, GetBool(c, "BAD_BOOL", true))
	assert.Equal(t, 45*time.Second, GetDuration(c, "TIMEOUT", time.Second))
	assert.Equal(t, 5*time.Minute, GetDuration(c, "TTL", time.Second))
	assert.Equal(t, time.Second, GetDuration(c, "MISSING", time.Second))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))
}

func TestSplit(t *testing.T) {
	k, v := split("A=b=c")
	assert.Equal(t, "A", k)
	assert.Equal(t, "b=c", v)

	k, v = split("NOVALUE")
	assert.Equal(t, "NOVALUE", k)
	assert.Equal(t, "", v)
}

type fakeParameters struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeParameters) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestOverlaySSM(t *testing.T) {
	lister := &fakeParameters{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/JWT_SECRET"), Value: aws.String("from-ssm")}},
		{{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("1234")}},
	}}
	c := map[string]string{"PORT": "8080"}

	added, err := OverlaySSM(context.Background(), c, lister, "/portfolio/prod")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, "from-ssm", c["JWT_SECRET"])
	assert.Equal(t, "8080", c["PORT"])
	assert.Equal(t, 2, lister.calls)
}
