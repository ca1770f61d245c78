package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/client"
	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/store/jsonfile"
)

func newTestServer(t *testing.T) (*httptest.Server, *jsonfile.BlockStore) {
	t.Helper()
	store := jsonfile.NewBlockStore(filepath.Join(t.TempDir(), "codeblocks.json"))
	cfg := config.DefaultConfig().Server
	ts := httptest.NewServer(New(store, cfg).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestRoot(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CodeBlocks API is running", body["message"])
}

func TestCRUD_ThroughClient(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client.New(ts.URL)
	ctx := context.Background()

	blocks, err := c.ListBlocks(ctx)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	created, err := c.CreateBlock(ctx, codeblock.Input{
		Title:            "Hello",
		Category:         "basics",
		Code:             "fmt.Println(\"hi\")",
		LineExplanations: codeblock.LineExplanations{1: "prints"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	title := "Hello, world"
	updated, err := c.UpdateBlock(ctx, created.ID, codeblock.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", updated.Title)
	assert.Equal(t, "basics", updated.Category)
	assert.Equal(t, "prints", updated.LineExplanations[1])

	got, err := c.GetBlock(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, c.DeleteBlock(ctx, created.ID))

	_, err = c.GetBlock(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestCreate_ValidationError(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/codeblocks", `{"title":"  ","category":"","code":"x","explanation":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	detail, ok := body["detail"].([]any)
	require.True(t, ok)
	require.Len(t, detail, 1)
	assert.Equal(t, "title", detail[0].(map[string]any)["field"])
}

func TestCreate_RequiresFieldsPresent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{name: "only title", body: `{"title":"T"}`, wantFields: []string{"category", "code", "explanation"}},
		{name: "null code", body: `{"title":"T","category":"","code":null,"explanation":""}`, wantFields: []string{"code"}},
		{name: "not an object", body: `["T"]`, wantFields: []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, store := newTestServer(t)

			resp, body := doRequest(t, http.MethodPost, ts.URL+"/codeblocks", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			detail, ok := body["detail"].([]any)
			require.True(t, ok)
			var fields []string
			for _, d := range detail {
				fields = append(fields, d.(map[string]any)["field"].(string))
			}
			assert.Equal(t, tt.wantFields, fields)

			blocks, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, blocks)
		})
	}
}

func TestCreate_EmptyOptionalFieldsAccepted(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/codeblocks",
		`{"title":"T","category":"","code":"","explanation":""}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "T", body["title"])
}

func TestCreate_InvalidJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doRequest(t, http.MethodPost, ts.URL+"/codeblocks", `{"title":`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		method string
		body   string
	}{
		{method: http.MethodGet},
		{method: http.MethodPut, body: `{"title":"x"}`},
		{method: http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp, body := doRequest(t, tt.method, ts.URL+"/codeblocks/99", tt.body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "Code block not found", body["detail"])
		})
	}
}

func TestNonIntegerID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, ts.URL+"/codeblocks/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDelete_ReturnsBlock(t *testing.T) {
	ts, store := newTestServer(t)
	_, err := store.Create(context.Background(), codeblock.Input{Title: "gone"})
	require.NoError(t, err)

	resp, body := doRequest(t, http.MethodDelete, ts.URL+"/codeblocks/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Code block deleted", body["message"])
	assert.Equal(t, "gone", body["block"].(map[string]any)["title"])
}

func TestCategories_SortedAndDistinct(t *testing.T) {
	ts, store := newTestServer(t)
	ctx := context.Background()
	for _, cat := range []string{"net", "basics", "net", "concurrency"} {
		_, err := store.Create(ctx, codeblock.Input{Title: "t", Category: cat})
		require.NoError(t, err)
	}

	cats, err := client.New(ts.URL).Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"basics", "concurrency", "net"}, cats)
}

func TestCategories_EmptyIsArray(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/categories", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["categories"])
}

func TestCORS_Preflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/codeblocks/1", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
	assert.Equal(t, "content-type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	store := jsonfile.NewBlockStore(filepath.Join(t.TempDir(), "codeblocks.json"))
	cfg := config.ServerConfig{Addr: ":0", CORSOrigins: []string{"http://allowed.example"}}
	ts := httptest.NewServer(New(store, cfg).Handler())
	t.Cleanup(ts.Close)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/codeblocks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Echoed(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/codeblocks", nil)
	require.NoError(t, err)
	req.Header.Set(client.RequestIDHeader, "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get(client.RequestIDHeader))
}
