package img2dds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/woozymasta/bcn"
)

// texture is a fully processed build: every face's every level payload,
// ready for serialization.
type texture struct {
	width  int
	height int
	format bcn.Format
	// faces[face][level] holds the level payload (raw pixels or blocks).
	faces  [][][]byte
	layout headerLayout
}

// validate checks payload sizes against the declared format and dimensions.
func (t *texture) validate() error {
	if len(t.faces) == 0 {
		return ErrNoFaces
	}

	for f, levels := range t.faces {
		if len(levels) != t.layout.mipMapCount {
			return fmt.Errorf("%w: face %d has %d levels, want %d",
				ErrFaceSizeMismatch, f, len(levels), t.layout.mipMapCount)
		}
		for i, data := range levels {
			expected := expectedDataLength(t.format, mipDimension(t.width, i), mipDimension(t.height, i))
			if expected <= 0 {
				return fmt.Errorf("%w: %s", ErrInvalidFormat, t.format)
			}
			if len(data) != expected {
				return fmt.Errorf("%w: face %d mipmap %d: expected %d, got %d",
					ErrCompressedSizeMismatch, f, i, expected, len(data))
			}
		}
	}

	return nil
}

// writeDDS serializes t as a DDS container: magic, header, then payloads in
// face-major, level-minor order.
func writeDDS(w io.Writer, t *texture) error {
	if err := t.validate(); err != nil {
		return err
	}

	header, err := makeDDSHeader(t.width, t.height, t.format, t.layout)
	if err != nil {
		return err
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	for f, levels := range t.faces {
		for i, data := range levels {
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("%w: face %d mipmap %d: %v", ErrWritePayload, f, i, err)
			}
		}
	}

	return nil
}

// writeFileAtomic writes path through a temporary file in the same
// directory that is renamed into place only after fn succeeded and the data
// reached the disk. On failure the temporary file is removed and path is
// left untouched.
func writeFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCommitFile, path, err)
	}

	return nil
}
