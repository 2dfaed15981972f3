// Package machine gives the local installation a stable identity, recorded
// in every certification report it produces.
package machine

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"randcert-go/pkg/appdir"
)

const uidFile = "machine-id"

var (
	mu      sync.Mutex
	idCache string
)

// ID returns the machine identifier, a 32-character hex string created on
// first use and kept in the application directory.
func ID() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if idCache != "" {
		return idCache, nil
	}
	path := appdir.Path(uidFile)
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		id := strings.TrimSpace(string(content))
		if _, derr := hex.DecodeString(id); derr != nil || len(id) != 32 {
			return "", fmt.Errorf("machine: malformed %s", path)
		}
		idCache = id
		return id, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("machine: %w", err)
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("machine: failed to generate id: %w", err)
	}
	id := hex.EncodeToString(raw)
	if err := os.WriteFile(path, []byte(id+"\n"), 0644); err != nil {
		return "", fmt.Errorf("machine: cannot write %s: %w", path, err)
	}
	idCache = id
	return id, nil
}
