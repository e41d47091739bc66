// Package scaffold writes the local Firebase project files.
//
// Generation is pure and idempotent: no network calls, and reruns produce
// byte-identical output.
package scaffold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NoobyNull/workshop-setup/internal/apperrors"
)

// firebaseConfig mirrors firebase.json.
type firebaseConfig struct {
	Firestore firestoreSection `json:"firestore"`
	Hosting   hostingSection   `json:"hosting"`
	Storage   storageSection   `json:"storage"`
}

type firestoreSection struct {
	Rules   string `json:"rules"`
	Indexes string `json:"indexes"`
}

type hostingSection struct {
	Public string   `json:"public"`
	Ignore []string `json:"ignore"`
}

type storageSection struct {
	Rules string `json:"rules"`
}

// firebaseRC mirrors .firebaserc.
type firebaseRC struct {
	Projects map[string]string `json:"projects"`
}

// indexesFile mirrors an empty firestore.indexes.json.
type indexesFile struct {
	Indexes        []any `json:"indexes"`
	FieldOverrides []any `json:"fieldOverrides"`
}

// defaultFirestoreRules locks Firestore down until published rules are
// downloaded over it.
const defaultFirestoreRules = `rules_version = '2';
service cloud.firestore {
  match /databases/{database}/documents {
    match /{document=**} {
      allow read, write: if false;
    }
  }
}
`

const defaultStorageRules = `rules_version = '2';
service firebase.storage {
  match /b/{bucket}/o {
    match /{allPaths=**} {
      allow read, write: if false;
    }
  }
}
`

// Generate writes the project scaffold into dir, creating directories as
// needed. Existing files are overwritten. Returns the relative paths written.
func Generate(dir, projectID string) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(dir, "public"), 0755); err != nil { // #nosec G301 - project sources, not secrets
		return nil, apperrors.Scaffold(fmt.Sprintf("failed to create project directory %s", dir)).Wrap(err)
	}

	files := []struct {
		name    string
		content []byte
	}{
		{"firebase.json", mustJSON(firebaseConfig{
			Firestore: firestoreSection{Rules: "firestore.rules", Indexes: "firestore.indexes.json"},
			Hosting: hostingSection{
				Public: "public",
				Ignore: []string{"firebase.json", "**/.*", "**/node_modules/**"},
			},
			Storage: storageSection{Rules: "storage.rules"},
		})},
		{".firebaserc", mustJSON(firebaseRC{Projects: map[string]string{"default": projectID}})},
		{"firestore.indexes.json", mustJSON(indexesFile{Indexes: []any{}, FieldOverrides: []any{}})},
		{"firestore.rules", []byte(defaultFirestoreRules)},
		{"storage.rules", []byte(defaultStorageRules)},
		{filepath.Join("public", "index.html"), []byte(loginPage(projectID))},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.content, 0644); err != nil { // #nosec G306 - project sources, not secrets
			return written, apperrors.Scaffold(fmt.Sprintf("failed to write %s", f.name)).Wrap(err)
		}
		written = append(written, f.name)
	}

	return written, nil
}

// loginPage renders the static Google sign-in page. The web app config uses
// known placeholders; real values are supplied out-of-band by the operator.
func loginPage(projectID string) string {
	return strings.ReplaceAll(loginPageTemplate, "__PROJECT_ID__", projectID)
}

func mustJSON(v any) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// All inputs are fixed structs, marshalling cannot fail.
		panic(err)
	}
	return append(data, '\n')
}
