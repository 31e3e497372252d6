package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// ReaderSource implements LineSource over an io.Reader.
type ReaderSource struct {
	name    string
	reader  *bufio.Reader
	lineNum int
	done    bool
}

// NewReaderSource creates a LineSource that reads lines from r.
// The name is reported as the Source of every line.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{
		name:   name,
		reader: bufio.NewReader(r),
	}
}

// Next returns the next line with its terminator intact.
// Returns io.EOF when the reader is exhausted.
func (s *ReaderSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if s.done {
		return nil, io.EOF
	}

	raw, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", s.name, err)
		}
		s.done = true
		if raw == "" {
			return nil, io.EOF
		}
		// Final line without a terminator
	}

	s.lineNum++
	return &Line{
		Raw:     raw,
		Source:  s.name,
		LineNum: s.lineNum,
	}, nil
}

// Close is a no-op; the caller owns the underlying reader.
func (s *ReaderSource) Close() error {
	return nil
}

// FileSource implements LineSource for a named file. The file is opened on
// the first call to Next and read up to the length it had at that moment.
type FileSource struct {
	path string

	file   *os.File
	source *ReaderSource
	closed bool
}

// NewFileSource creates a LineSource that reads the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file path this source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Next returns the next line of the file.
// Returns io.EOF once the snapshot length has been consumed.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	if s.closed {
		return nil, io.EOF
	}
	if s.source == nil {
		if err := s.open(); err != nil {
			return nil, err
		}
	}
	return s.source.Next(ctx)
}

// Close releases the open file, if any. A closed source reports io.EOF.
func (s *FileSource) Close() error {
	s.closed = true
	s.source = nil
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *FileSource) open() error {
	f, err := os.Open(s.path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening input file %s: %w", s.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat input file %s: %w", s.path, err)
	}

	var r io.Reader = f
	if info.Mode().IsRegular() {
		// Snapshot the end-of-data marker so appends during the read are not seen
		r = io.LimitReader(f, info.Size())
	}

	s.file = f
	s.source = NewReaderSource(s.path, r)
	return nil
}
