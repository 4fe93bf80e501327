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
	cfg := map[string]string{
		"PORT":             "8080",
		"BAD_INT":          "eight",
		"FLAG":             "true",
		"EMPTY":            "",
		"TIMEOUT":          "15",
		"ACCEPTED_ORIGINS": "http://a.test, ,http://b.test",
	}

	assert.Equal(t, 8080, GetInt(cfg, "PORT", 1))
	assert.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(nil, "PORT", 1))
	assert.True(t, GetBool(cfg, "FLAG", false))
	assert.True(t, GetBool(cfg, "MISSING", true))
	assert.Equal(t, "fallback", GetString(cfg, "EMPTY", "fallback"))
	assert.Equal(t, 15*time.Second, GetSeconds(cfg, "TIMEOUT", time.Second))
	assert.Equal(t, time.Second, GetSeconds(cfg, "MISSING", time.Second))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetList(cfg, "ACCEPTED_ORIGINS", nil))
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestOverlaySSMKeepsEnvironmentValues(t *testing.T) {
	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/reviews/prod/JWT_SECRET"), Value: aws.String("from-ssm")},
			},
			NextToken: aws.String("next"),
		},
		{
			Parameters: []types.Parameter{
				{Name: aws.String("/reviews/prod/PORT"), Value: aws.String("9000")},
			},
		},
	}}
	cfg := map[string]string{"PORT": "8080"}

	require.NoError(t, OverlaySSM(context.Background(), client, "/reviews/prod", cfg))
	assert.Equal(t, "from-ssm", cfg["JWT_SECRET"])
	assert.Equal(t, "8080", cfg["PORT"])
	assert.Equal(t, 2, client.calls)
}
