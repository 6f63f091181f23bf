package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoCode is returned when no recognizable pattern is found in the image.
var ErrNoCode = errors.New("no barcode found")

// Decoder extracts a machine-readable code from raw image bytes.
type Decoder interface {
	Decode(ctx context.Context, image []byte) (string, error)
}

// ZbarDecoder decodes barcodes with the zbarimg external tool.
type ZbarDecoder struct {
	binary string
}

// NewZbarDecoder locates zbarimg on PATH.
func NewZbarDecoder() (*ZbarDecoder, error) {
	path, err := exec.LookPath("zbarimg")
	if err != nil {
		return nil, fmt.Errorf("zbarimg not found on PATH: %w", err)
	}
	return &ZbarDecoder{binary: path}, nil
}

// Decode feeds the image to zbarimg and returns the first decoded payload.
func (d *ZbarDecoder) Decode(ctx context.Context, image []byte) (string, error) {
	cmd := exec.CommandContext(ctx, d.binary, "--raw", "-q", "-")
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		// zbarimg exits 4 when no symbol was detected.
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 4 {
			return "", ErrNoCode
		}
		return "", fmt.Errorf("zbarimg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	code := strings.TrimSpace(stdout.String())
	if code == "" {
		return "", ErrNoCode
	}
	if idx := strings.IndexByte(code, '\n'); idx >= 0 {
		code = strings.TrimSpace(code[:idx])
	}
	return code, nil
}
