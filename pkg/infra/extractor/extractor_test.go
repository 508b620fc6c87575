package extractor_test

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
	"github.com/mizuki-ohta/rawland/pkg/infra/extractor"
)

// buildZip builds an in-memory ZIP archive from entry name to content
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestExtract_Success(t *testing.T) {
	ctx := context.Background()

	entries := map[string]string{
		"a.txt":     "hello raw layer",
		"sub/b.txt": "nested entry",
	}
	zipData := buildZip(t, entries)

	// The extract directory does not exist yet; Extract must create it
	extractDir := filepath.Join(t.TempDir(), "raw", "movie_lens")

	x := extractor.New()
	report, err := x.Extract(ctx, zipData, "set.zip", extractDir)

	gt.NoError(t, err)
	gt.Equal(t, len(report.Files), 2)
	gt.Number(t, report.Size).Greater(int64(0))

	for name, want := range entries {
		content, err := os.ReadFile(filepath.Join(extractDir, name))
		gt.NoError(t, err)
		gt.Equal(t, string(content), want)
	}
}

func TestExtract_DirectoryEntries(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	dirHdr := &zip.FileHeader{Name: "data/"}
	dirHdr.SetMode(0755 | os.ModeDir)
	_, err := zw.CreateHeader(dirHdr)
	gt.NoError(t, err)
	w, err := zw.Create("data/ratings.csv")
	gt.NoError(t, err)
	_, err = w.Write([]byte("user,item,rating\n"))
	gt.NoError(t, err)
	gt.NoError(t, zw.Close())

	extractDir := t.TempDir()

	x := extractor.New()
	report, err := x.Extract(ctx, buf.Bytes(), "set.zip", extractDir)

	gt.NoError(t, err)
	// Directory entries are not counted as files
	gt.Equal(t, len(report.Files), 1)

	info, err := os.Stat(filepath.Join(extractDir, "data"))
	gt.NoError(t, err)
	gt.Equal(t, info.IsDir(), true)
}

func TestExtract_IdempotentDirCreation(t *testing.T) {
	ctx := context.Background()

	zipData := buildZip(t, map[string]string{"a.txt": "x"})
	extractDir := t.TempDir() // already exists

	x := extractor.New()
	_, err := x.Extract(ctx, zipData, "set.zip", extractDir)
	gt.NoError(t, err)

	// Second extraction into the same directory succeeds silently
	_, err = x.Extract(ctx, zipData, "set.zip", extractDir)
	gt.NoError(t, err)
}

func TestExtract_CorruptArchive(t *testing.T) {
	ctx := context.Background()

	extractDir := filepath.Join(t.TempDir(), "raw", "broken")

	x := extractor.New()
	_, err := x.Extract(ctx, []byte("this is plain text, not a zip"), "broken.zip", extractDir)

	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.ErrTagCorruptArchive), true)
	gt.String(t, err.Error()).Contains("not a valid ZIP archive")

	// Directory creation precedes validity parsing
	info, statErr := os.Stat(extractDir)
	gt.NoError(t, statErr)
	gt.Equal(t, info.IsDir(), true)
}

func TestExtract_PathTraversalEntry(t *testing.T) {
	ctx := context.Background()

	// zip.Writer refuses nothing here; the guard is on the read side
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "../evil.txt"})
	gt.NoError(t, err)
	_, err = w.Write([]byte("outside"))
	gt.NoError(t, err)
	gt.NoError(t, zw.Close())

	base := t.TempDir()
	extractDir := filepath.Join(base, "raw")

	x := extractor.New()
	_, err = x.Extract(ctx, buf.Bytes(), "evil.zip", extractDir)

	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.ErrTagCorruptArchive), true)

	_, statErr := os.Stat(filepath.Join(base, "evil.txt"))
	gt.Equal(t, os.IsNotExist(statErr), true)
}
