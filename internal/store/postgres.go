package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/didi/gendry/builder"
	_ "github.com/lib/pq"

	"github.com/xxxsen/mauth/internal/model"
	"github.com/xxxsen/mauth/internal/pkg/dbutil"
)

const createUsersTable = `CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL
)`

var userColumns = []string{"id", "name", "email", "password_hash"}

type postgresConfig struct {
	DSN string `json:"dsn"`
}

type postgresStore struct {
	db *sql.DB
}

func init() {
	Register("postgres", createPostgresStore)
}

func createPostgresStore(args interface{}) (Store, error) {
	config := &postgresConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.DSN == "" {
		return nil, fmt.Errorf("postgres store dsn is required")
	}
	db, err := sql.Open("postgres", config.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newPostgresStore(db)
}

func newPostgresStore(db *sql.DB) (*postgresStore, error) {
	if _, err := db.Exec(createUsersTable); err != nil {
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) LoadAll(ctx context.Context) ([]model.User, error) {
	where := map[string]interface{}{"_orderby": "id asc"}
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, storageErr("build select", err)
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, storageErr("select users", err)
	}
	defer func() { _ = rows.Close() }()
	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash); err != nil {
			return nil, storageErr("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate users", err)
	}
	return users, nil
}

// SaveAll rewrites the table in a single transaction.
func (s *postgresStore) SaveAll(ctx context.Context, users []model.User) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return storageErr("clear users", err)
	}
	if len(users) > 0 {
		data := make([]map[string]interface{}, 0, len(users))
		for _, user := range users {
			data = append(data, map[string]interface{}{
				"id":            user.ID,
				"name":          user.Name,
				"email":         user.Email,
				"password_hash": user.PasswordHash,
			})
		}
		sqlStr, args, buildErr := builder.BuildInsert("users", data)
		if buildErr != nil {
			return storageErr("build insert", buildErr)
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return storageErr("insert users", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}
