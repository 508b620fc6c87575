package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mizuki-ohta/rawland/pkg/domain/interfaces"
	"github.com/mizuki-ohta/rawland/pkg/domain/model"
	"github.com/mizuki-ohta/rawland/pkg/domain/types"
)

type extractor struct{}

// New creates an Extractor writing ZIP entries to the local filesystem
func New() interfaces.Extractor {
	return &extractor{}
}

// Extract writes every entry of the archive under extractDir, creating the
// directory (and parents) if absent. Extraction is not atomic: a failure
// partway through leaves the directory partially populated.
func (x *extractor) Extract(ctx context.Context, content []byte, fileName, extractDir string) (*model.ExtractReport, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Extracting archive", "file_name", fileName, "extract_dir", extractDir)

	// Directory creation precedes archive validation on purpose: a corrupt
	// archive still leaves an (empty) extract directory behind.
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create extract directory",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("extract_dir", extractDir),
		)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, goerr.Wrap(err, "content is not a valid ZIP archive",
			goerr.T(types.ErrTagCorruptArchive),
			goerr.V("file_name", fileName),
		)
	}

	var files []string
	var totalSize int64

	for _, file := range zipReader.File {
		if err := x.extractEntry(file, extractDir); err != nil {
			return nil, goerr.Wrap(err, "failed to extract archive entry",
				goerr.V("entry", file.Name),
				goerr.V("file_name", fileName),
			)
		}
		if !file.FileInfo().IsDir() {
			files = append(files, file.Name)
			totalSize += int64(file.UncompressedSize64)
		}
	}

	logger.Info("Extraction complete",
		"file_name", fileName,
		"extract_dir", extractDir,
		"file_count", len(files),
		"total_size_bytes", totalSize,
	)

	return &model.ExtractReport{
		Files: files,
		Size:  totalSize,
	}, nil
}

// extractEntry writes a single archive entry, preserving its relative path
func (x *extractor) extractEntry(file *zip.File, destDir string) error {
	// Reject entries that would escape the destination directory
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("archive entry escapes extract directory",
			goerr.T(types.ErrTagCorruptArchive),
			goerr.V("entry", file.Name),
		)
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, file.FileInfo().Mode()); err != nil {
			return goerr.Wrap(err, "failed to create directory entry",
				goerr.T(types.ErrTagFilesystem),
				goerr.V("path", destPath),
			)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("path", filepath.Dir(destPath)),
		)
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open archive entry",
			goerr.T(types.ErrTagCorruptArchive),
			goerr.V("entry", file.Name),
		)
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("path", destPath),
		)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to write entry content",
			goerr.T(types.ErrTagFilesystem),
			goerr.V("path", destPath),
		)
	}

	return nil
}
