package img2dds

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/bcn"
)

// ddsMagic is the DDS file signature.
const ddsMagic = "DDS "

// hasDDSMagic reports whether r starts with the DDS signature without
// consuming it.
func hasDDSMagic(r *bufio.Reader) bool {
	magic, err := r.Peek(ddsMagicSize)
	return err == nil && string(magic) == ddsMagic
}

// isDDSFile reports whether path holds a DDS container: signature, a
// 124-byte header and non-zero dimensions. The payload is not inspected.
func isDDSFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReader(f)
	if !hasDDSMagic(r) {
		return false
	}

	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return false
	}

	return uint32(header.Size) == uint32(bcn.DDSHeaderSize) && header.Width > 0 && header.Height > 0
}

// readDDSHeaders reads the DDS headers from the reader.
func readDDSHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	return header, dx10, nil
}

// decodeDDS decodes the largest level of the first face of an uncompressed
// DDS or EDDS stream of fileSize bytes into a pixel buffer. Nothing larger
// than the header and the file size allow is allocated.
func decodeDDS(r *bufio.Reader, enfusion bool, fileSize int64) (*PixelBuffer, error) {
	header, dx10, err := readDDSHeaders(r)
	if err != nil {
		return nil, err
	}

	width, height := int(header.Width), int(header.Height)
	if _, err := pixelBytes(width, height); err != nil {
		return nil, fmt.Errorf("%w: %dx%d: %v", ErrCorruptSource, header.Width, header.Height, err)
	}

	format, name := detectFormat(header, dx10)
	expected := expectedDataLength(format, width, height)
	switch {
	case expected <= 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	case format != bcn.FormatRGBA8 && format != bcn.FormatBGRA8:
		return nil, fmt.Errorf("%w: %s", ErrCompressedSource, name)
	}

	available := fileSize - ddsMagicSize - int64(bcn.DDSHeaderSize)
	if dx10 != nil {
		available -= ddsDX10HeaderSize
	}

	var data []byte
	if enfusion {
		mipMapCount := 1
		if (uint32(header.Caps)&uint32(bcn.DDSCapsMipmap)) != 0 && header.MipMapCount > 0 {
			maxCount, err := calculateMipMapCount(width, height)
			if err != nil {
				return nil, err
			}
			if header.MipMapCount > uint32(maxCount) {
				return nil, fmt.Errorf("%w: %d mipmaps for %dx%d", ErrCorruptSource, header.MipMapCount, width, height)
			}
			mipMapCount = int(header.MipMapCount)
		}
		data, err = readLargestMipFromBlocks(r, mipMapCount, expected, available)
	} else {
		if int64(expected) > available {
			return nil, fmt.Errorf("%w: %d byte payload, %d bytes left in file", ErrCorruptSource, expected, available)
		}
		data = make([]byte, expected)
		if _, err = io.ReadFull(r, data); err != nil {
			err = fmt.Errorf("%w: %v", ErrReadPayload, err)
		}
	}
	if err != nil {
		return nil, err
	}

	// X8 formats carry undefined alpha bytes
	if name == "RGBX8" || name == "BGRX8" {
		for i := 3; i < len(data); i += 4 {
			data[i] = 0xff
		}
	}

	img, err := bcn.DecodeImageWithOptions(data, width, height, format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return PixelBufferFromImage(img)
}

// readLargestMipFromBlocks reads the block table and returns level 0, which
// is stored last. available is the number of bytes left after the header.
func readLargestMipFromBlocks(r io.Reader, mipMapCount, expectedSize int, available int64) ([]byte, error) {
	table, err := readBlockTable(r, mipMapCount)
	if err != nil {
		return nil, err
	}

	bodies := available - int64(len(table))*blockTableEntrySize
	for i, h := range table {
		bodies -= int64(h.size)
		if bodies < 0 {
			return nil, fmt.Errorf("%w: block %d ends past the end of file", ErrCorruptSource, i)
		}
	}

	last := len(table) - 1
	for i := 0; i < last; i++ {
		if _, err := io.CopyN(io.Discard, r, int64(table[i].size)); err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %v", ErrBlockBodyRead, mipMapCount-1-i, err)
		}
	}

	b, err := readBlockBody(r, table[last])
	if err != nil {
		return nil, err
	}

	return decompressBlock(b, expectedSize)
}
