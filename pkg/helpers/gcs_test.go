package helpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CoverObjectPath(t *testing.T) {
	p := CoverObjectPath(42, "Capa.JPG")

	assert.True(t, strings.HasPrefix(p, "covers/42/"), p)
	assert.True(t, strings.HasSuffix(p, ".jpg"), p)
	assert.NotEqual(t, p, CoverObjectPath(42, "Capa.JPG"))
}

func Test_PublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bucket/covers/1/a.png", PublicURL("bucket", "covers/1/a.png"))
	assert.Equal(t, "https://storage.googleapis.com/bucket/covers/1/a.png", PublicURL("bucket", "/covers/1/a.png"))
}

func Test_BooksIndexMapping_IsValidJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(BooksIndexMapping), &m))
	assert.Contains(t, m, "mappings")
}
