package changelog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moorara/gitch/pkg/log"
)

// File is a changelog file on disk.
// Its sections are parsed once and cached for the lifetime of the File.
type File struct {
	logger   log.Logger
	filename string
	sections Sections
}

// NewFile creates a new changelog file reader.
func NewFile(logger log.Logger, filename string) *File {
	return &File{
		logger:   logger,
		filename: filepath.Clean(filename),
	}
}

// Filename returns the path of the changelog file.
func (f *File) Filename() string {
	return f.filename
}

// Exists determines whether the changelog file exists and is a regular file.
func (f *File) Exists() bool {
	info, err := os.Stat(f.filename)
	return err == nil && info.Mode().IsRegular()
}

// Sections returns the sections of the changelog file in document order.
func (f *File) Sections() (Sections, error) {
	if f.sections != nil {
		return f.sections, nil
	}

	f.logger.Debugf("Opening %s ...", f.filename)

	file, err := os.Open(f.filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f.logger.Debugf("Parsing %s ...", f.filename)

	sections, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.filename, err)
	}

	f.logger.Debugf("Parsed %s: %d sections", f.filename, len(sections))

	f.sections = sections

	return f.sections, nil
}
