package machine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"randcert-go/pkg/appdir"
)

func TestIDIsStable(t *testing.T) {
	t.Setenv(appdir.EnvHome, t.TempDir())

	first, err := ID()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 32 {
		t.Fatalf("ID() = %q, want 32 hex characters", first)
	}

	idCache = ""
	second, err := ID()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("ID changed across reads: %q != %q", first, second)
	}

	stored, err := os.ReadFile(filepath.Join(appdir.AppDir(), uidFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(stored)) != first {
		t.Errorf("stored id %q does not match %q", stored, first)
	}
}
