package rules

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
)

func rulesServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/projects/digital-workshop-hub/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"releases":[
			{"name":"projects/digital-workshop-hub/releases/cloud.firestore","rulesetName":"projects/digital-workshop-hub/rulesets/rs-fs"},
			{"name":"projects/digital-workshop-hub/releases/firebase.storage/bucket","rulesetName":"projects/digital-workshop-hub/rulesets/rs-st"},
			{"name":"projects/digital-workshop-hub/releases/other","rulesetName":""}
		]}`)
	})
	mux.HandleFunc("/v1/projects/digital-workshop-hub/rulesets/rs-fs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"projects/digital-workshop-hub/rulesets/rs-fs","source":{"files":[
			{"name":"firestore.rules","content":"service cloud.firestore { /* published */ }"}
		]}}`)
	})
	mux.HandleFunc("/v1/projects/digital-workshop-hub/rulesets/rs-st", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"projects/digital-workshop-hub/rulesets/rs-st","source":{"files":[
			{"name":"storage.rules","content":"service firebase.storage { /* published */ }"}
		]}}`)
	})
	return httptest.NewServer(mux)
}

func TestDownload(t *testing.T) {
	srv := rulesServer(t)
	defer srv.Close()
	dir := t.TempDir()

	client := NewClient("digital-workshop-hub", srv.Client(), srv.URL)
	written, err := client.Download(context.Background(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"firestore.rules", "storage.rules"}, written)

	data, err := os.ReadFile(filepath.Join(dir, "firestore.rules"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cloud.firestore")

	data, err = os.ReadFile(filepath.Join(dir, "storage.rules"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "firebase.storage")
}

func TestDownloadReleasesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "denied")
	}))
	defer srv.Close()

	client := NewClient("digital-workshop-hub", srv.Client(), srv.URL)
	_, err := client.Download(context.Background(), t.TempDir())

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAPIFailure, appErr.Code)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestDownloadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient("digital-workshop-hub", nil, srv.URL)
	_, err := client.Download(context.Background(), t.TempDir())

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeTransport, appErr.Code)
}

func TestDownloadNoReleases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient("digital-workshop-hub", srv.Client(), srv.URL)
	written, err := client.Download(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestTargetFilename(t *testing.T) {
	tests := []struct {
		name        string
		releaseName string
		fileName    string
		want        string
	}{
		{"firestore release", "projects/p/releases/cloud.firestore", "rules", "firestore.rules"},
		{"storage release", "projects/p/releases/firebase.storage/bucket", "rules", "storage.rules"},
		{"firestore by filename", "projects/p/releases/x", "firestore.rules", "firestore.rules"},
		{"storage by filename", "projects/p/releases/x", "my_storage.rules", "storage.rules"},
		{"unroutable", "projects/p/releases/x", "misc.rules", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, targetFilename(tt.releaseName, tt.fileName))
		})
	}
}
