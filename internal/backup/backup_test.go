package backup_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shelf/internal/backup"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := t.TempDir()
	dbPath := filepath.Join(src, "shelf.db")
	postersDir := filepath.Join(src, "posters")
	writeFile(t, dbPath, "db-bytes")
	writeFile(t, filepath.Join(postersDir, "aaa.jpg"), "poster-a")
	writeFile(t, filepath.Join(postersDir, "bbb.jpg"), "poster-b")

	var buf bytes.Buffer
	if err := backup.Export(&buf, dbPath, postersDir); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := t.TempDir()
	dstDB := filepath.Join(dst, "shelf.db")
	dstPosters := filepath.Join(dst, "posters")
	writeFile(t, dstDB, "stale-db")
	writeFile(t, filepath.Join(dstPosters, "old.jpg"), "stale-poster")

	reader := bytes.NewReader(buf.Bytes())
	if err := backup.Import(reader, int64(buf.Len()), dstDB, dstPosters); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if got := readFile(t, dstDB); got != "db-bytes" {
		t.Fatalf("expected database restored, got %q", got)
	}
	if got := readFile(t, filepath.Join(dstPosters, "aaa.jpg")); got != "poster-a" {
		t.Fatalf("expected poster restored, got %q", got)
	}
	if _, err := os.Stat(filepath.Join(dstPosters, "old.jpg")); !os.IsNotExist(err) {
		t.Fatal("expected stale poster removed")
	}
	if _, err := os.Stat(filepath.Join(dst, "_restore_tmp")); !os.IsNotExist(err) {
		t.Fatal("expected scratch directory removed")
	}
}

func TestExportWithoutPostersDir(t *testing.T) {
	src := t.TempDir()
	dbPath := filepath.Join(src, "shelf.db")
	writeFile(t, dbPath, "db-bytes")

	var buf bytes.Buffer
	if err := backup.Export(&buf, dbPath, filepath.Join(src, "missing-posters")); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != backup.DatabaseEntry {
		t.Fatalf("expected single database entry, got %#v", zr.File)
	}
}

func TestImportMissingDatabaseLeavesStateUntouched(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(backup.PostersPrefix + "only.jpg")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	entry.Write([]byte("poster"))
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	dst := t.TempDir()
	dstDB := filepath.Join(dst, "shelf.db")
	dstPosters := filepath.Join(dst, "posters")
	writeFile(t, dstDB, "live-db")
	writeFile(t, filepath.Join(dstPosters, "keep.jpg"), "live-poster")

	reader := bytes.NewReader(buf.Bytes())
	err = backup.Import(reader, int64(buf.Len()), dstDB, dstPosters)
	if !errors.Is(err, backup.ErrMissingDatabase) {
		t.Fatalf("expected ErrMissingDatabase, got %v", err)
	}

	if got := readFile(t, dstDB); got != "live-db" {
		t.Fatalf("expected live database untouched, got %q", got)
	}
	if got := readFile(t, filepath.Join(dstPosters, "keep.jpg")); got != "live-poster" {
		t.Fatalf("expected live posters untouched, got %q", got)
	}
}

func TestImportRejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create("../evil")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	entry.Write([]byte("nope"))
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	dst := t.TempDir()
	reader := bytes.NewReader(buf.Bytes())
	err = backup.Import(reader, int64(buf.Len()), filepath.Join(dst, "shelf.db"), filepath.Join(dst, "posters"))
	if err == nil {
		t.Fatal("expected error for escaping archive entry")
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(dst), "evil")); !os.IsNotExist(statErr) {
		t.Fatal("expected no file written outside the profile directory")
	}
}
