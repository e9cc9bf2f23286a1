package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("secret1")
	req.NoError(err)
	req.NotEqual("secret1", hash)

	req.True(CheckPassword(hash, "secret1"))
	req.False(CheckPassword(hash, "secret2"))
	req.False(CheckPassword("", "secret1"))
}
