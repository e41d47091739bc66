package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPath creates a directory of fake executables and makes it the whole
// PATH, so the check can only find the stubs.
func stubPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0755))
}

func npmCalls(t *testing.T, callLog string) int {
	t.Helper()
	data, err := os.ReadFile(callLog)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return strings.Count(string(data), "\n")
}

func TestCheckFirebaseCLIPresent(t *testing.T) {
	dir := stubPath(t)
	writeStub(t, dir, "firebase", "#!/bin/sh\necho 13.35.1\n")

	check := CheckFirebaseCLI(context.Background())
	assert.Equal(t, StatusPass, check.Status)
	assert.Contains(t, check.Detail, "13.35.1")
}

func TestCheckFirebaseCLIInstallsExactlyOnce(t *testing.T) {
	dir := stubPath(t)
	callLog := filepath.Join(dir, "npm-calls")

	// npm "installs" the CLI by dropping a working firebase stub in place.
	writeStub(t, dir, "npm", fmt.Sprintf(
		"#!/bin/sh\necho run >> %[1]s\nprintf '#!/bin/sh\\necho 13.35.1\\n' > %[2]s\n/bin/chmod 755 %[2]s\n",
		callLog, filepath.Join(dir, "firebase")))

	check := CheckFirebaseCLI(context.Background())
	assert.Equal(t, StatusPass, check.Status)
	assert.Contains(t, check.Detail, "(installed)")
	assert.Equal(t, 1, npmCalls(t, callLog))
}

func TestCheckFirebaseCLIStillMissingAfterInstall(t *testing.T) {
	dir := stubPath(t)
	callLog := filepath.Join(dir, "npm-calls")

	// npm succeeds but installs nothing. The check must warn after its single
	// re-check, not keep installing.
	writeStub(t, dir, "npm", fmt.Sprintf("#!/bin/sh\necho run >> %s\nexit 0\n", callLog))

	check := CheckFirebaseCLI(context.Background())
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Detail, "still missing after install attempt")
	assert.Equal(t, 1, npmCalls(t, callLog))
}

func TestCheckFirebaseCLIInstallFails(t *testing.T) {
	dir := stubPath(t)
	callLog := filepath.Join(dir, "npm-calls")

	writeStub(t, dir, "npm", fmt.Sprintf("#!/bin/sh\necho run >> %s\nexit 1\n", callLog))

	check := CheckFirebaseCLI(context.Background())
	assert.Equal(t, StatusWarn, check.Status)
	assert.Contains(t, check.Detail, "npm install failed")
	assert.Equal(t, 1, npmCalls(t, callLog))
}
