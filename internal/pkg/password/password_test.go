package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appErr "github.com/xxxsen/mauth/internal/pkg/errors"
)

func TestHashVerify_RandomSalt(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("pw1")
	require.NoError(t, err)
	second, err := h.Hash("pw1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := h.Verify("pw1", hash)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerify_Mismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	ok, err := h.Verify("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	ok, err := h.Verify("pw1", "not-a-bcrypt-hash")
	require.False(t, ok)
	require.ErrorIs(t, err, appErr.ErrHashing)
}

func TestHash_Failures(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("x", 73))
	require.ErrorIs(t, err, appErr.ErrHashing)

	_, err = NewHasher(bcrypt.MaxCost + 1).Hash("pw1")
	require.ErrorIs(t, err, appErr.ErrHashing)
}

func TestNewHasher_DefaultCost(t *testing.T) {
	require.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
}
