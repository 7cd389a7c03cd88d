package cache

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTooLarge is returned when a cover exceeds the size limit.
var ErrTooLarge = errors.New("cover exceeds size limit")

// Store writes r to the cache as bookID's cover, replacing any previous one.
// The image type is detected from the content. At most maxBytes are accepted
// when maxBytes > 0. Returns the final file path.
func (m *Manager) Store(bookID string, r io.Reader, maxBytes int64) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("reading cover: %w", err)
	}
	ext, err := sniffImage(head)
	if err != nil {
		return "", err
	}

	destPath := m.Path(bookID, ext)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	src := io.Reader(br)
	if maxBytes > 0 {
		src = io.LimitReader(br, maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxBytes)
	}

	// A previous cover may have had a different type.
	if err := m.Remove(bookID); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}
