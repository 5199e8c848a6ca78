package ipfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURI(t *testing.T) {
	c := New(Config{APIAddr: "localhost:5001", Gateway: "https://ipfs.io/"})
	assert.Equal(t, "https://ipfs.io/ipfs/QmFoo", c.URI("QmFoo"))
}

func TestContentPath(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"https://ipfs.io/ipfs/QmFoo", "QmFoo"},
		{"https://gateway.example/ipfs/bafybeigdyr/meta.json", "bafybeigdyr/meta.json"},
		{"ipfs://QmFoo", "QmFoo"},
		{"QmFoo", "QmFoo"},
	}
	for _, tc := range cases {
		got, err := contentPath(tc.uri)
		require.NoError(t, err, "uri %q", tc.uri)
		assert.Equal(t, tc.want, got, "uri %q", tc.uri)
	}
}

func TestContentPath_Invalid(t *testing.T) {
	for _, uri := range []string{"", "https://ipfs.io/ipfs/"} {
		_, err := contentPath(uri)
		assert.Error(t, err, "uri %q", uri)
	}
}
