// Package testutil holds the large fixtures shared by benchmarks and
// filesystem tests.
package testutil

import (
	"embed"
	"io/fs"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.acf
var fixtures embed.FS

// FS returns the embedded fixtures with testdata/ as the root.
func FS() fs.FS {
	sub, err := fs.Sub(fixtures, "testdata")
	if err != nil {
		panic(err)
	}
	return sub
}

// Read returns the named fixture and fails tb if it does not exist.
func Read(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := fs.ReadFile(fixtures, path.Join("testdata", name))
	require.NoError(tb, err, "failed to read fixture %s", name)
	return data
}
