package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks a listing that did not come from disk.
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded BASIC listing.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	starts []uint32 // byte offset where each physical line begins
}

// Text returns the file content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// LineCount returns the number of physical lines. A trailing newline does
// not start another line.
func (f *File) LineCount() uint32 {
	n := len(f.starts)
	if n > 0 && int(f.starts[n-1]) == len(f.Content) {
		n--
	}
	return uint32(n) // lineStarts проверил, что длина влезает в uint32
}

// GetLine returns physical line row (1-based) without its newline, or ""
// when row is out of range.
func (f *File) GetLine(row uint32) string {
	if !f.HasLine(row) {
		return ""
	}
	start := f.starts[row-1]
	end := uint32(len(f.Content))
	if int(row) < len(f.starts) {
		end = f.starts[row] - 1
	}
	return string(f.Content[start:end])
}

// HasLine reports whether row names a physical line of the file.
func (f *File) HasLine(row uint32) bool {
	return row > 0 && row <= f.LineCount()
}
