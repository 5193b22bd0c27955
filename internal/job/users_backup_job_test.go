package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/mauth/internal/model"
	"github.com/xxxsen/mauth/internal/store"
)

type failingStore struct{}

func (failingStore) LoadAll(ctx context.Context) ([]model.User, error) {
	return nil, errors.New("unavailable")
}

func (failingStore) SaveAll(ctx context.Context, users []model.User) error {
	return errors.New("unavailable")
}

func TestUsersBackupJob_Copies(t *testing.T) {
	ctx := context.Background()
	users := []model.User{{ID: 0, Name: "Ann", Email: "a@x.com", PasswordHash: "h"}}
	src := store.NewMemory(users...)
	dst := store.NewMemory()

	require.NoError(t, NewUsersBackupJob(src, dst).Run(ctx))
	got, err := dst.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, users, got)
}

func TestUsersBackupJob_Errors(t *testing.T) {
	ctx := context.Background()
	require.Error(t, NewUsersBackupJob(failingStore{}, store.NewMemory()).Run(ctx))
	require.Error(t, NewUsersBackupJob(store.NewMemory(), failingStore{}).Run(ctx))
	require.NoError(t, NewUsersBackupJob(nil, nil).Run(ctx))
}
