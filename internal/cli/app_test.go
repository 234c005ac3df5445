package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"work-tracker/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const testSecret = "cli-test-secret-0123456789"

// setupTestApp returns an App over a fresh database file and the buffer it prints to
func setupTestApp(t *testing.T) (*App, *bytes.Buffer, *test.Hook) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "wt.db")
	cfg.Time.Zone = "UTC"
	cfg.Auth.Secret = testSecret

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	out := &bytes.Buffer{}
	return NewApp(cfg, logger, out), out, hook
}
