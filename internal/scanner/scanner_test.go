package scanner_test

import (
	"testing"

	"shelf/internal/scanner"
)

func TestNewZbarDecoderMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if _, err := scanner.NewZbarDecoder(); err == nil {
		t.Fatal("expected error when zbarimg is absent")
	}
}
