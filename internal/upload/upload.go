package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// ErrNotPDF is returned for any file whose content is not a PDF
var ErrNotPDF = errors.New("not a PDF file")

// File describes a local file accepted for upload
type File struct {
	Path  string
	Name  string
	Size  int64
	Pages int // 0 when the page count could not be read
}

// Inspect checks that path is a PDF by content and gathers display details.
// It does not extract text; that is the backend's job.
func Inspect(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNotPDF)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect file type: %w", err)
	}
	if !mtype.Is(mimePDF) {
		return nil, fmt.Errorf("%s is %s: %w", filepath.Base(path), mtype.String(), ErrNotPDF)
	}

	return &File{
		Path:  path,
		Name:  filepath.Base(path),
		Size:  info.Size(),
		Pages: pageCount(path),
	}, nil
}

// pageCount is best effort; malformed documents are still uploaded and
// the backend reports the failure.
func pageCount(path string) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}
