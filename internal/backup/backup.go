package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shelf/internal/fileutil"
)

// DatabaseEntry is the archive entry name for the catalog database.
const DatabaseEntry = "shelf.db"

// PostersPrefix is the archive subtree holding cached poster files.
const PostersPrefix = "posters/"

// ErrMissingDatabase marks an archive without the required database entry.
var ErrMissingDatabase = errors.New("backup archive is missing " + DatabaseEntry)

// Export writes a zip archive of the database file and poster directory
// tree to w.
func Export(w io.Writer, dbPath, postersDir string) error {
	zw := zip.NewWriter(w)

	if _, err := os.Stat(dbPath); err == nil {
		if err := addFile(zw, dbPath, DatabaseEntry); err != nil {
			return err
		}
	}

	if info, err := os.Stat(postersDir); err == nil && info.IsDir() {
		err := filepath.WalkDir(postersDir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(postersDir, path)
			if err != nil {
				return err
			}
			return addFile(zw, path, PostersPrefix+filepath.ToSlash(rel))
		})
		if err != nil {
			return fmt.Errorf("archive posters: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// Import restores the database and poster directory from a zip archive.
// The archive is extracted to a scratch directory first; when the database
// entry is absent, the live state is left completely unchanged. The
// scratch directory is always removed.
func Import(r io.ReaderAt, size int64, dbPath, postersDir string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	scratch := filepath.Join(filepath.Dir(dbPath), "_restore_tmp")
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("clear scratch directory: %w", err)
	}
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	for _, entry := range zr.File {
		if err := extractEntry(entry, scratch); err != nil {
			return err
		}
	}

	extractedDB := filepath.Join(scratch, DatabaseEntry)
	if _, err := os.Stat(extractedDB); err != nil {
		return ErrMissingDatabase
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("ensure database directory: %w", err)
	}
	if err := fileutil.CopyFile(extractedDB, dbPath); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}

	if err := os.RemoveAll(postersDir); err != nil {
		return fmt.Errorf("clear posters directory: %w", err)
	}
	if err := os.MkdirAll(postersDir, 0o755); err != nil {
		return fmt.Errorf("recreate posters directory: %w", err)
	}

	extractedPosters := filepath.Join(scratch, "posters")
	if info, err := os.Stat(extractedPosters); err == nil && info.IsDir() {
		err := filepath.WalkDir(extractedPosters, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(extractedPosters, path)
			if err != nil {
				return err
			}
			target := filepath.Join(postersDir, rel)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			return fileutil.CopyFile(path, target)
		})
		if err != nil {
			return fmt.Errorf("restore posters: %w", err)
		}
	}

	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	writer, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", name, err)
	}
	if _, err := io.Copy(writer, file); err != nil {
		return fmt.Errorf("write archive entry %s: %w", name, err)
	}
	return nil
}

func extractEntry(entry *zip.File, scratch string) error {
	name := filepath.FromSlash(entry.Name)
	target := filepath.Join(scratch, name)
	if !strings.HasPrefix(target, filepath.Clean(scratch)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes extraction directory", entry.Name)
	}
	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extract %s: %w", entry.Name, err)
	}
	return dst.Close()
}
