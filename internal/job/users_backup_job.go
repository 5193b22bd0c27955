package job

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mauth/internal/store"
)

// UsersBackupJob copies the full user collection from one store into another.
type UsersBackupJob struct {
	src store.Store
	dst store.Store
}

func NewUsersBackupJob(src, dst store.Store) *UsersBackupJob {
	return &UsersBackupJob{src: src, dst: dst}
}

func (j *UsersBackupJob) Name() string {
	return "users_backup"
}

func (j *UsersBackupJob) Run(ctx context.Context) error {
	if j.src == nil || j.dst == nil {
		return nil
	}
	users, err := j.src.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if err := j.dst.SaveAll(ctx, users); err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	logutil.GetLogger(ctx).Info("users backed up", zap.Int("count", len(users)))
	return nil
}
