package store

import (
	"bytes"
	"encoding/json"

	"github.com/xxxsen/mauth/internal/model"
)

func decodeUsers(data []byte) ([]model.User, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func encodeUsers(users []model.User) ([]byte, error) {
	if users == nil {
		users = []model.User{}
	}
	return json.MarshalIndent(users, "", "  ")
}
