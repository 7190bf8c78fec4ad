package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"snake-arena/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestR2Endpoint(t *testing.T) {
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com", r2Endpoint(config.R2Config{AccountID: "acct"}))
	assert.Equal(t, "http://localhost:9000", r2Endpoint(config.R2Config{AccountID: "acct", Endpoint: "http://localhost:9000/"}))
}

func TestPublicURL(t *testing.T) {
	cfg := config.R2Config{AccountID: "acct", Bucket: "boards"}
	r := &R2Client{cdnBaseURL: cdnBaseURL(cfg, r2Endpoint(cfg))}
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com/boards/leaderboard/all.json", r.PublicURL("leaderboard/all.json"))

	cfg.CDNBaseURL = "https://cdn.example.com/"
	r = &R2Client{cdnBaseURL: cdnBaseURL(cfg, r2Endpoint(cfg))}
	assert.Equal(t, "https://cdn.example.com/leaderboard/all.json", r.PublicURL("/leaderboard/all.json"))
}

func TestPutObjectSendsToBucket(t *testing.T) {
	var (
		mu        sync.Mutex
		gotPath   string
		gotBody   string
		gotType   string
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotMethod, gotPath, gotBody, gotType = r.Method, r.URL.Path, string(body), r.Header.Get("Content-Type")
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewR2Client(context.Background(), config.R2Config{
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		Bucket:          "boards",
		Endpoint:        srv.URL,
	})
	require.NoError(t, err)

	url, err := client.PutObject(context.Background(), "leaderboard/walls.json", "application/json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/boards/leaderboard/walls.json", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/boards/leaderboard/walls.json", gotPath)
	assert.Contains(t, gotBody, `{"ok":true}`)
	assert.Equal(t, "application/json", gotType)
}
