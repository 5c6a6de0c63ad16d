package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeURL(t *testing.T) {
	u, err := MakeURL("https://api.example.com/v1/search?limit=5", URLParam{"limit", "1"}, URLParam{"q", "red panda"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/search?limit=1&q=red+panda", u.String())

	u, err = MakeURL("https://api.example.com/img/cat")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/img/cat", u.String())
}

func TestMakeURL_Invalid(t *testing.T) {
	for _, raw := range []string{"://missing", "/relative/path", "%zz"} {
		_, err := MakeURL(raw)
		assert.Error(t, err, raw)
	}
}
