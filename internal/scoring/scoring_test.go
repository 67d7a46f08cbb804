package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string, got *Query) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openscoring/model/risk_example", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if got != nil {
			assert.NoError(t, json.Unmarshal(data, got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScore(t *testing.T) {
	var got Query
	srv := newTestServer(t, http.StatusOK,
		`{"id":"q1","result":{"RiskScore":47.5,"ReasonCode1":"RC2","ReasonCode2":"RC1","ReasonCode3":null}}`, &got)

	c, err := NewClient(srv.URL+"/openscoring/model", time.Second)
	require.NoError(t, err)

	resp, err := c.Score(context.Background(), "risk_example", Query{
		ID:        "q1",
		Arguments: map[string]any{"age": 37, "role": "engineering"},
	})
	require.NoError(t, err)

	assert.Equal(t, "q1", got.ID)
	assert.Equal(t, "engineering", got.Arguments["role"])
	assert.InDelta(t, 37, got.Arguments["age"], 0)
	assert.Equal(t, "q1", resp.ID)
	assert.InDelta(t, 47.5, resp.Result["RiskScore"], 0)

	var out bytes.Buffer
	require.NoError(t, WriteResult(&out, resp, false))
	assert.Equal(t, "RiskScore: 47.5\nReasonCode1: RC2\nReasonCode2: RC1\nReasonCode3: -\n", out.String())

	out.Reset()
	require.NoError(t, WriteResult(&out, resp, true))
	assert.JSONEq(t, string(resp.Raw), out.String())
}

func TestScoreDefaults(t *testing.T) {
	var got Query
	srv := newTestServer(t, http.StatusOK, `{"result":{}}`, &got)

	c, err := NewClient(srv.URL+"/openscoring/model", time.Second)
	require.NoError(t, err)
	_, err = c.Score(context.Background(), "risk_example", Query{})
	require.NoError(t, err)

	assert.Equal(t, DefaultQueryID, got.ID)
	assert.NotNil(t, got.Arguments)
	assert.Empty(t, got.Arguments)
}

func TestScoreHTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"message":"Model \"risk_example\" not found"}`, nil)

	c, err := NewClient(srv.URL+"/openscoring/model", time.Second)
	require.NoError(t, err)
	_, err = c.Score(context.Background(), "risk_example", Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Contains(t, err.Error(), "not found")
}

func TestScoreBadBody(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `not json`, nil)

	c, err := NewClient(srv.URL+"/openscoring/model", time.Second)
	require.NoError(t, err)
	_, err = c.Score(context.Background(), "risk_example", Query{})
	assert.ErrorContains(t, err, "failed to unmarshal response")
}

func TestClientValidation(t *testing.T) {
	_, err := NewClient("", time.Second)
	assert.ErrorContains(t, err, "--endpoint")

	c, err := NewClient("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)
	_, err = c.Score(context.Background(), "", Query{})
	assert.ErrorContains(t, err, "--model")
}

func TestWriteResultWithoutResult(t *testing.T) {
	var out bytes.Buffer
	err := WriteResult(&out, &Response{Raw: []byte(`{"message":"ok"}`)}, false)
	assert.ErrorContains(t, err, "--raw")
}

func TestLoadArguments(t *testing.T) {
	args, err := LoadArguments(`{"wage": 1500}`, "")
	require.NoError(t, err)
	assert.InDelta(t, 1500, args["wage"], 0)

	path := filepath.Join(t.TempDir(), "query.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"role": "marketing"}`), 0o644))
	args, err = LoadArguments("", path)
	require.NoError(t, err)
	assert.Equal(t, "marketing", args["role"])

	args, err = LoadArguments("", "")
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = LoadArguments(`[1, 2]`, "")
	assert.ErrorContains(t, err, "JSON object")

	_, err = LoadArguments("", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read query file")
}

func TestOutputNames(t *testing.T) {
	assert.Equal(t, []string{"RiskScore", "ReasonCode1", "ReasonCode2", "ReasonCode3"}, OutputNames())
}
