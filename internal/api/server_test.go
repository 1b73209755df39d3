package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankloan/internal/data"
	"bankloan/internal/features"
	"bankloan/internal/pipeline"
)

var columns = []string{"Age", "Experience", "Income", "Family", "CCAvg", "Education", "Mortgage", "CD Account"}

func trainedPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	as := data.SyntheticApplicants(300, 0.9, 11)
	rows, err := features.VectorizeAll(as, columns)
	require.NoError(t, err)
	y := make(data.Labels, len(as))
	for i, a := range as {
		y[i] = a.PersonalLoan
	}
	p, err := pipeline.Train("logistic-regression", data.Features{Columns: columns, Rows: rows}, y, pipeline.DefaultParams())
	require.NoError(t, err)
	return p
}

func newRouter(t *testing.T, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(trainedPipeline(t), opts, nil).Router()
}

const applicantJSON = `{"age":40,"experience":15,"income":180,"family":3,"ccavg":6.2,"education":3,"mortgage":0,"securities_account":0,"cd_account":1,"online":1,"credit_card":0}`

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(newRouter(t, Options{APIKey: "k"}), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestPredict(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/predict", applicantJSON, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Approved    bool    `json:"approved"`
		Probability float64 `json:"probability"`
		Band        string  `json:"band"`
		Model       string  `json:"model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.GreaterOrEqual(t, out.Probability, 0.0)
	assert.LessOrEqual(t, out.Probability, 1.0)
	assert.Equal(t, out.Probability >= 0.5, out.Approved)
	assert.Contains(t, []string{"high", "medium", "low", "very_low"}, out.Band)
	assert.True(t, strings.HasPrefix(out.Model, "logistic-regression"))
}

func TestPredictRejectsInvalidApplicant(t *testing.T) {
	r := newRouter(t, Options{})
	w := do(r, http.MethodPost, "/predict", `{"age":12,"family":2,"education":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/predict", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatch(t *testing.T) {
	r := newRouter(t, Options{})
	low := `{"age":30,"experience":5,"income":20,"family":1,"ccavg":0.2,"education":1,"mortgage":0,"securities_account":0,"cd_account":0,"online":0,"credit_card":0}`
	w := do(r, http.MethodPost, "/batch", "["+applicantJSON+","+low+"]", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []prediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Greater(t, out[0].Probability, out[1].Probability)

	w = do(r, http.MethodPost, "/batch", "[]", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIKey(t *testing.T) {
	r := newRouter(t, Options{APIKey: "secret"})

	w := do(r, http.MethodPost, "/predict", applicantJSON, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/predict", applicantJSON, map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/model", "", map[string]string{"X-API-Key": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"algorithm":"logistic-regression"`)
}

func TestBand(t *testing.T) {
	s := NewServer(nil, Options{Threshold: 0.6}, nil)
	assert.Equal(t, "high", s.band(0.97))
	assert.Equal(t, "medium", s.band(0.6))
	assert.Equal(t, "low", s.band(0.35))
	assert.Equal(t, "very_low", s.band(0.1))
	assert.Equal(t, 0.5, NewServer(nil, Options{}, nil).threshold)
}
