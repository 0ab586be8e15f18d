package service

import (
	"path/filepath"
	"testing"

	"github.com/careerconnect/careerconnect/config"
	"github.com/careerconnect/careerconnect/database"
	"github.com/careerconnect/careerconnect/database/model"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *AuthService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })

	auth, err := NewAuthService()
	require.NoError(t, err)
	return auth
}

func mustRegister(t *testing.T, auth *AuthService, name, email string) *model.User {
	t.Helper()
	u, err := auth.Register(name, email, "password1")
	require.NoError(t, err)
	return u
}

func mustAdmin(t *testing.T, name, email string) *model.User {
	t.Helper()
	svc := UserService{}
	u, err := svc.CreateAdmin(name, email, "password1")
	require.NoError(t, err)
	return u
}

func mustJob(t *testing.T, posterID, title string) *model.Job {
	t.Helper()
	svc := JobService{}
	j, err := svc.CreateJob(posterID, JobInput{Title: title, Company: "Acme", Description: "Build things", Location: "Remote"})
	require.NoError(t, err)
	return j
}

func ptr[T any](v T) *T { return &v }
