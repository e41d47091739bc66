package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	written, err := Generate(dir, "digital-workshop-hub")
	require.NoError(t, err)
	assert.Len(t, written, 6)

	expected := []string{
		"firebase.json",
		".firebaserc",
		"firestore.indexes.json",
		"firestore.rules",
		"storage.rules",
		filepath.Join("public", "index.html"),
	}
	for _, name := range expected {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestGenerateFirebaseJSON(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(dir, "digital-workshop-hub")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "firebase.json"))
	require.NoError(t, err)

	var cfg struct {
		Firestore struct {
			Rules   string `json:"rules"`
			Indexes string `json:"indexes"`
		} `json:"firestore"`
		Hosting struct {
			Public string   `json:"public"`
			Ignore []string `json:"ignore"`
		} `json:"hosting"`
		Storage struct {
			Rules string `json:"rules"`
		} `json:"storage"`
	}
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "firestore.rules", cfg.Firestore.Rules)
	assert.Equal(t, "firestore.indexes.json", cfg.Firestore.Indexes)
	assert.Equal(t, "public", cfg.Hosting.Public)
	assert.Contains(t, cfg.Hosting.Ignore, "**/node_modules/**")
	assert.Equal(t, "storage.rules", cfg.Storage.Rules)
}

func TestGenerateFirebaseRC(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(dir, "some-other-project")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".firebaserc"))
	require.NoError(t, err)

	var rc struct {
		Projects map[string]string `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(data, &rc))
	assert.Equal(t, "some-other-project", rc.Projects["default"])
}

func TestGenerateIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := Generate(dir, "digital-workshop-hub")
	require.NoError(t, err)

	snapshot := map[string][]byte{}
	for _, name := range first {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		snapshot[name] = data
	}

	second, err := Generate(dir, "digital-workshop-hub")
	require.NoError(t, err)
	require.Equal(t, first, second)

	for _, name := range second {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, snapshot[name], data, "rerun changed %s", name)
	}
}

func TestLoginPagePlaceholders(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(dir, "digital-workshop-hub")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	require.NoError(t, err)
	page := string(data)

	// The placeholder web app config is intentional; real values come from
	// the Firebase console out-of-band.
	assert.Contains(t, page, `apiKey: "YOUR_API_KEY"`)
	assert.Contains(t, page, `appId: "YOUR_APP_ID"`)
	assert.Contains(t, page, `projectId: "digital-workshop-hub"`)
	assert.Contains(t, page, "digital-workshop-hub.firebaseapp.com")
	assert.Contains(t, page, "GoogleAuthProvider")
	assert.NotContains(t, page, "__PROJECT_ID__")
}
