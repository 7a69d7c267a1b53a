package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-recommendation-engine/internal/handlers"
	"scheme-recommendation-engine/internal/services/recommender"
)

const handlerCSV = `schemeName,description,eligibility,level,state,minAge,maxAge
Farmer Aid,Subsidy for farmers,Small and marginal farmers,Central,,18,60
Youth Scheme,Skill training,Applicants aged 18 to 25,State,Kerala,18,25
`

func newHandler(t *testing.T) *handlers.RecommendHandler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gov.csv")
	require.NoError(t, os.WriteFile(path, []byte(handlerCSV), 0o644))
	t.Setenv("DATA_FILE", path)
	t.Setenv("S3_BUCKET", "")

	h, err := handlers.NewRecommendHandler(context.Background())
	require.NoError(t, err)
	return h
}

func TestRecommendHandler(t *testing.T) {
	h := newHandler(t)

	body := `{"profile":{"age":30,"occupation":"Farmer"},"limit":5}`
	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var result recommender.Result
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &result))
	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, 1, result.Matched)
	require.Equal(t, 1, result.Returned)
	assert.Equal(t, "Farmer Aid", result.Records[0].DisplayName)
}

func TestRecommendHandler_DefaultLimit(t *testing.T) {
	h := newHandler(t)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"profile":{}}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecommendHandler_InvalidBody(t *testing.T) {
	h := newHandler(t)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: "{not json"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecommendHandler_InvalidLimit(t *testing.T) {
	h := newHandler(t)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"profile":{},"limit":999}`})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
