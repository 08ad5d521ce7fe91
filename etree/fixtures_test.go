package etree_test

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeArchive builds a minimal OOXML container on disk from part name to
// part content and returns its path.
func writeArchive(t *testing.T, name string, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	for partName, content := range parts {
		pw, err := w.Create(partName)
		require.NoError(t, err)
		_, err = pw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const relsXMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
