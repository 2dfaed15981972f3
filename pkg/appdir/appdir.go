package appdir

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

// EnvHome overrides the application directory.
const EnvHome = "RANDCERT_HOME"

var (
	appDirCache string
	once        sync.Once
)

// AppDir returns the directory holding the report store and log database,
// creating it on first use.
func AppDir() string {
	once.Do(func() {
		dir := os.Getenv(EnvHome)
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("%v", err)
			}
			dir = filepath.Join(home, ".randcert")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("appdir: %v", err)
		}
		appDirCache = dir
	})
	return appDirCache
}

// Path resolves name against AppDir unless it is already absolute.
func Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(AppDir(), name)
}
