package logtail

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const defaultChunkSize = 64 * 1024

// Reader yields the lines of a file from last to first.
type Reader struct {
	file    *os.File
	offset  int64  // bytes before offset have not been read yet
	carry   []byte // read but not yet returned, always a line prefix
	chunk   int
	started bool
	done    bool
}

// Open prepares a backward reader over path. The file size is captured
// here, so bytes appended after Open are not returned.
func Open(path string) (*Reader, error) {
	return OpenSize(path, defaultChunkSize)
}

// OpenSize is Open with an explicit read chunk size.
func OpenSize(path string, chunk int) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log: %w", err)
	}
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	return &Reader{file: file, offset: info.Size(), chunk: chunk}, nil
}

// Next returns the previous line without its terminator. It returns io.EOF
// after the first line of the file has been returned.
func (r *Reader) Next() (string, error) {
	if r.done {
		return "", io.EOF
	}
	for {
		if idx := bytes.LastIndexByte(r.carry, '\n'); idx >= 0 {
			line := string(trimCR(r.carry[idx+1:]))
			r.carry = r.carry[:idx]
			return line, nil
		}
		if r.offset == 0 {
			r.done = true
			if !r.started {
				return "", io.EOF
			}
			return string(trimCR(r.carry)), nil
		}
		if err := r.fill(); err != nil {
			return "", err
		}
	}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

func (r *Reader) fill() error {
	n := int64(r.chunk)
	if n > r.offset {
		n = r.offset
	}
	r.offset -= n

	buf := make([]byte, n, int(n)+len(r.carry))
	read, err := r.file.ReadAt(buf, r.offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read log: %w", err)
	}
	if read < len(buf) {
		// Truncated since Open.
		return fmt.Errorf("read log: %w", io.ErrUnexpectedEOF)
	}
	r.carry = append(buf, r.carry...)

	if !r.started {
		r.started = true
		// A terminating newline does not start another line.
		if last := len(r.carry) - 1; last >= 0 && r.carry[last] == '\n' {
			r.carry = r.carry[:last]
		}
	}
	return nil
}

func trimCR(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte{'\r'})
}

// Lines reads the whole file at path newest-first. Intended for small
// files and tests; Reader keeps memory bounded for large ones.
func Lines(path string) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var lines []string
	for {
		line, err := r.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}
