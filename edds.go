package img2dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/bcn"
)

const (
	// blockMagicCOPY marks an uncompressed block.
	blockMagicCOPY = "COPY"
	// blockMagicLZ4 marks an LZ4-compressed block.
	blockMagicLZ4 = "LZ4 "

	// chunkSize is the Enfusion chunk size for LZ4 streams.
	chunkSize = 64 * 1024

	// minLZ4BlockSize is the payload size below which blocks are stored as COPY.
	minLZ4BlockSize = 1024
	// maxLZ4Ratio is the compressed/raw ratio above which COPY is kept.
	maxLZ4Ratio = 0.85
	// maxLZ4Expansion bounds how much one LZ4 input byte can expand.
	maxLZ4Expansion = 255

	// blockTableEntrySize is a table entry: magic plus int32 size.
	blockTableEntrySize = 8
)

// block is one EDDS mipmap block body.
type block struct {
	magic            string
	data             []byte
	size             int32
	uncompressedSize int32
}

// writeEDDS serializes a single-face texture as EDDS: DDS header with the
// ENF1 marker, a block table and block bodies, both smallest level first.
func writeEDDS(w io.Writer, t *texture) error {
	if len(t.faces) != 1 {
		return fmt.Errorf("%w: got %d faces", ErrContainerFaces, len(t.faces))
	}
	if err := t.validate(); err != nil {
		return err
	}

	header, err := makeDDSHeader(t.width, t.height, t.format, t.layout)
	if err != nil {
		return err
	}

	levels := t.faces[0]
	blocks := make([]*block, len(levels))
	for i, data := range levels {
		b, err := compressBlock(data)
		if err != nil {
			return fmt.Errorf("mipmap %d: %w", i, err)
		}
		blocks[i] = b
	}

	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if _, err := io.WriteString(w, blocks[i].magic); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockTable, i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, blocks[i].size); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockTable, i, err)
		}
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		if err := writeBlockData(w, blocks[i]); err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
		}
	}

	return nil
}

// writeBlockData writes the block payload (no table entry).
func writeBlockData(w io.Writer, b *block) error {
	if b.magic == blockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, b.uncompressedSize); err != nil {
			return err
		}
	}

	_, err := w.Write(b.data)
	return err
}

// compressBlock compresses raw data into LZ4 chunk-stream or falls back to COPY.
func compressBlock(data []byte) (*block, error) {
	uncompressedSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}

	copyBlock := &block{magic: blockMagicCOPY, size: uncompressedSize, data: data}
	if len(data) < minLZ4BlockSize {
		return copyBlock, nil
	}

	var chunkStream bytes.Buffer
	compressBuf := make([]byte, lz4.CompressBlockBound(chunkSize))

	for i := 0; i < len(data); i += chunkSize {
		end := min(i+chunkSize, len(data))
		srcChunk := data[i:end]

		cn, err := lz4.CompressBlockHC(srcChunk, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(srcChunk))*maxLZ4Ratio {
			return copyBlock, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		chunkStream.WriteByte(byte(cn))
		chunkStream.WriteByte(byte(cn >> 8))
		chunkStream.WriteByte(byte(cn >> 16))
		if end == len(data) {
			chunkStream.WriteByte(0x80)
		} else {
			chunkStream.WriteByte(0x00)
		}
		chunkStream.Write(compressBuf[:cn])
	}

	compressed := chunkStream.Bytes()
	total := 4 + len(compressed)
	if float64(total) > float64(len(data))*maxLZ4Ratio {
		return copyBlock, nil
	}

	size, err := i32FromInt(total)
	if err != nil {
		return nil, err
	}

	return &block{
		magic:            blockMagicLZ4,
		size:             size,
		uncompressedSize: uncompressedSize,
		data:             compressed,
	}, nil
}

// decompressBlock inflates an EDDS block body (as stored, including the
// uncompressed size prefix of LZ4 blocks) into raw data.
func decompressBlock(b *block, expectedSize int) ([]byte, error) {
	if b.magic == blockMagicCOPY {
		if len(b.data) != expectedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedSize, len(b.data))
		}
		return b.data, nil
	}
	if b.magic != blockMagicLZ4 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, b.magic)
	}
	if len(b.data) < 4 {
		return nil, fmt.Errorf("%w: missing size prefix", ErrChunkStreamTruncated)
	}

	targetSize := int(binary.LittleEndian.Uint32(b.data[:4]))
	if targetSize <= 0 || targetSize != expectedSize {
		return nil, fmt.Errorf("%w: %d, expected %d", ErrInvalidTargetSize, targetSize, expectedSize)
	}
	if int64(targetSize) > int64(len(b.data))*maxLZ4Expansion+chunkSize {
		return nil, fmt.Errorf("%w: %d from %d compressed bytes", ErrInvalidTargetSize, targetSize, len(b.data))
	}

	const dictCap = 64 * 1024
	dict := make([]byte, 0, dictCap)
	target := make([]byte, targetSize)
	outIdx := 0

	r := bytes.NewReader(b.data[4:])
	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: chunk header: %v", ErrChunkStreamTruncated, err)
		}

		cSize := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if (flags &^ 0x80) != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: chunk data: %v", ErrChunkStreamTruncated, err)
		}

		remaining := targetSize - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := target[outIdx : outIdx+min(chunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		outIdx += n

		// rolling dictionary: the last 64 KiB of decoded output
		start := max(0, outIdx-dictCap)
		dict = append(dict[:0], target[start:outIdx]...)

		if (flags & 0x80) != 0 {
			break
		}
	}

	if outIdx != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, outIdx)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}

type blockHeader struct {
	magic string
	size  int32
}

func readBlockTable(r io.Reader, mipMapCount int) ([]blockHeader, error) {
	hdrs := make([]blockHeader, 0, mipMapCount)
	for i := 0; i < mipMapCount; i++ {
		var magic [4]byte
		if _, err := io.ReadFull(r, magic[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d magic: %v", ErrBlockTableRead, i, err)
		}

		var size int32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("%w: entry %d size: %v", ErrBlockTableRead, i, err)
		}

		m := string(magic[:])
		if m != blockMagicCOPY && m != blockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, m)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{magic: m, size: size})
	}

	return hdrs, nil
}

func readBlockBody(r io.Reader, h blockHeader) (*block, error) {
	data := make([]byte, h.size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, h.magic, err)
	}

	return &block{magic: h.magic, size: h.size, data: data}, nil
}
