package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet holds the listings read during one run. A FileID is an index
// into the set; adding the same path twice yields two files.
type FileSet struct {
	files []File
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Len reports how many files were added.
func (s *FileSet) Len() int {
	return len(s.files)
}

// Add stores content under path and returns its ID.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	s.files = append(s.files, File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
		starts:  lineStarts(content),
	})
	return FileID(n)
}

// Load reads a listing from disk. A UTF-8 BOM is dropped and CRLF pairs
// become LF; the flags record both.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return s.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory listing (stdin, tests).
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Get returns the file with the given ID.
func (s *FileSet) Get(id FileID) *File {
	return &s.files[id]
}
