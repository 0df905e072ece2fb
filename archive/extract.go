package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/itchio/savior"
	"github.com/itchio/savior/zipextractor"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// ExtractParams describes one extraction: a downloaded loader archive
// and the game directory to materialize it into.
type ExtractParams struct {
	ArchivePath string
	Destination string

	Consumer *state.Consumer
}

// ArchiveOpenError means the archive file couldn't be opened, or
// isn't a valid zip container.
type ArchiveOpenError struct {
	Path   string
	Reason error
}

func (e *ArchiveOpenError) Error() string {
	return fmt.Sprintf("unable to open archive %s: %s", e.Path, e.Reason)
}

// FileCreateError names the destination file we couldn't create.
type FileCreateError struct {
	Path   string
	Reason error
}

func (e *FileCreateError) Error() string {
	return fmt.Sprintf("unable to create file %s: %s", e.Path, e.Reason)
}

// DirectoryCreateError names the directory we couldn't create.
type DirectoryCreateError struct {
	Path   string
	Reason error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("unable to create directory %s: %s", e.Path, e.Reason)
}

// Extract walks the zip at params.ArchivePath and materializes every
// entry under params.Destination, in container order. Existing files
// are overwritten in place, so re-extracting the same archive is
// idempotent. The first failing entry aborts the whole operation;
// whatever was already written stays on disk.
func Extract(params ExtractParams) error {
	consumer := params.Consumer
	if consumer == nil {
		consumer = savior.NopConsumer()
	}

	f, err := os.Open(params.ArchivePath)
	if err != nil {
		return &ArchiveOpenError{Path: params.ArchivePath, Reason: err}
	}
	defer f.Close()

	stats, err := f.Stat()
	if err != nil {
		return &ArchiveOpenError{Path: params.ArchivePath, Reason: err}
	}

	ex, err := zipextractor.New(f, stats.Size())
	if err != nil {
		return &ArchiveOpenError{Path: params.ArchivePath, Reason: err}
	}
	ex.SetConsumer(consumer)

	sink := &loaderSink{
		FolderSink: &savior.FolderSink{
			Directory: params.Destination,
			Consumer:  consumer,
		},
	}
	defer sink.Close()

	res, err := ex.Resume(nil, sink)
	if err != nil {
		return errors.WithMessage(err, fmt.Sprintf("extracting %s", params.ArchivePath))
	}

	consumer.Statf("Extracted %s", res.Stats())
	return nil
}

// loaderSink decorates savior's folder sink so failures name the
// on-disk path they concern, the way callers report them.
type loaderSink struct {
	*savior.FolderSink
}

func (ls *loaderSink) Mkdir(entry *savior.Entry) error {
	err := ls.FolderSink.Mkdir(entry)
	if err != nil {
		return &DirectoryCreateError{
			Path:   filepath.Join(ls.Directory, filepath.FromSlash(entry.CanonicalPath)),
			Reason: err,
		}
	}
	return nil
}

func (ls *loaderSink) GetWriter(entry *savior.Entry) (savior.EntryWriter, error) {
	w, err := ls.FolderSink.GetWriter(entry)
	if err != nil {
		return nil, &FileCreateError{
			Path:   filepath.Join(ls.Directory, filepath.FromSlash(entry.CanonicalPath)),
			Reason: err,
		}
	}
	return w, nil
}
