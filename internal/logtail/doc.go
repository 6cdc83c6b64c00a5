// Package logtail reads log files back to front.
//
// # Overview
//
// Log files are append-only and callers usually want the most recent
// records, so this package walks a file from its last line toward its first
// and lets the consumer stop as soon as it has enough. Nothing past the stop
// point is read.
//
// Example usage:
//
//	r, err := logtail.Open("/var/log/logdesk/main.log")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	for {
//		line, err := r.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		// newest line first
//	}
//
// # Backward Chunked Reading
//
// The reader keeps a single carry buffer holding bytes that have been read
// but not yet returned:
//
//	1. Capture the file size at Open (the snapshot end)
//	2. While the carry holds no newline:
//	   - Read the chunk that ends where the previous chunk began
//	   - Prepend it to the carry
//	3. Return the bytes after the last newline in the carry
//	4. When the start of the file is reached, return what remains
//
// Memory use is O(chunk size + longest line), not O(file size).
//
// # Line Terminators
//
// Both "\n" and "\r\n" are recognized. A newline at the very end of the
// file terminates the last line and does not produce an extra empty line.
//
// # Concurrent Writers
//
// Writers appending to the file while it is being read do not affect the
// result: the end offset is fixed when the reader is opened. A file
// truncated underneath the reader yields io.ErrUnexpectedEOF.
//
// # Error Handling
//
// Open returns the os.Open error unchanged, so callers can test for
// fs.ErrNotExist. Read errors are wrapped with "read log".
package logtail
