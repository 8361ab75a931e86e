package scan

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"go.uber.org/multierr"

	apperrors "github.com/agbru/primescan/internal/errors"
)

// Header is the first row of every output file.
var Header = []string{"sequence_index", "prime_value"}

// ErrLocked is returned by OpenCSV when another run holds the output file.
var ErrLocked = errors.New("output file is locked by another run")

// CSVSink writes records as comma-separated rows to a file it holds an
// exclusive advisory lock on.
type CSVSink struct {
	path   string
	f      *os.File
	w      *csv.Writer
	row    []string
	closed bool
}

// OpenCSV creates or truncates path, locks it and writes the header. The file
// is only truncated once the lock is held, so a concurrent run keeps its
// output intact.
func OpenCSV(path string) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, apperrors.IOError{Op: "open", Path: path, Cause: err}
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, apperrors.IOError{Op: "lock", Path: path, Cause: err}
	}
	if err := f.Truncate(0); err != nil {
		return nil, apperrors.IOError{Op: "truncate", Path: path, Cause: multierr.Combine(err, unlockFile(f), f.Close())}
	}

	s := &CSVSink{path: path, f: f, w: csv.NewWriter(f), row: make([]string, 2)}
	if err := s.w.Write(Header); err != nil {
		return nil, apperrors.IOError{Op: "write header", Path: path, Cause: multierr.Combine(err, s.release())}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return nil, apperrors.IOError{Op: "write header", Path: path, Cause: multierr.Combine(err, s.release())}
	}
	return s, nil
}

// Name returns the output path.
func (s *CSVSink) Name() string { return s.path }

// WriteBatch appends one row per record and flushes them to the file.
func (s *CSVSink) WriteBatch(records []Record) error {
	if s.closed {
		return os.ErrClosed
	}
	for _, r := range records {
		s.row[0] = strconv.FormatUint(r.Index, 10)
		s.row[1] = strconv.FormatUint(r.Value, 10)
		if err := s.w.Write(s.row); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

// Close flushes pending output, syncs the file to disk and releases the lock.
// Calling Close more than once is a no-op.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	s.w.Flush()
	err := s.w.Error()
	if err == nil {
		err = s.f.Sync()
	}
	return multierr.Append(err, s.release())
}

func (s *CSVSink) release() error {
	s.closed = true
	return multierr.Combine(unlockFile(s.f), s.f.Close())
}
