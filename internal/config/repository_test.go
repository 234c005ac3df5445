package config

import (
	"context"
	"path/filepath"
	"testing"

	"work-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRepository(t *testing.T) {
	// Arrange
	cfg := NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "wt.db")

	// Act
	repo, err := CreateRepository(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	defer repo.Close()

	org := &sqlite.Organization{Name: "Acme"}
	require.NoError(t, repo.CreateOrganization(context.Background(), org))
	assert.NotZero(t, org.ID)
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	exists, err := repo.UserExists(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, exists)
}
