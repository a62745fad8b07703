package img2dds

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/woozymasta/bcn"
)

func TestCompressRoundTrip(t *testing.T) {
	t.Parallel()

	data := make([]byte, 128*1024)
	for i := range data {
		data[i] = byte((i*31 + 7) & 0xff)
	}

	b, err := compressBlock(data)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if b.magic != blockMagicLZ4 {
		t.Fatalf("expected LZ4 block, got %q", b.magic)
	}

	// bodies are stored with the uncompressed size prefix
	var body bytes.Buffer
	if err := writeBlockData(&body, b); err != nil {
		t.Fatalf("writeBlockData: %v", err)
	}
	if body.Len() != int(b.size) {
		t.Fatalf("body %d bytes, table size %d", body.Len(), b.size)
	}

	out, err := decompressBlock(&block{magic: b.magic, data: body.Bytes()}, len(data))
	if err != nil {
		t.Fatalf("decompressBlock: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestCompressBlockCOPY(t *testing.T) {
	t.Parallel()

	small := bytes.Repeat([]byte{1}, minLZ4BlockSize-1)
	b, err := compressBlock(small)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if b.magic != blockMagicCOPY || int(b.size) != len(small) {
		t.Fatalf("expected COPY block of %d bytes, got %q/%d", len(small), b.magic, b.size)
	}

	if _, err := decompressBlock(b, len(small)+1); !errors.Is(err, ErrCopySizeMismatch) {
		t.Fatalf("expected ErrCopySizeMismatch, got %v", err)
	}
}

func TestDecompressBlockErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    *block
		want error
	}{
		{name: "unknown-magic", b: &block{magic: "ZSTD", data: []byte{0}}, want: ErrUnknownBlockMagic},
		{name: "no-prefix", b: &block{magic: blockMagicLZ4, data: []byte{1, 2}}, want: ErrChunkStreamTruncated},
		{name: "bad-target", b: &block{magic: blockMagicLZ4, data: []byte{9, 0, 0, 0}}, want: ErrInvalidTargetSize},
		{
			name: "bad-flags",
			b:    &block{magic: blockMagicLZ4, data: []byte{16, 0, 0, 0, 1, 0, 0, 0x40, 0}},
			want: ErrUnknownLZ4Flags,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := decompressBlock(tc.b, 16)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrInput) {
				t.Fatalf("expected input error class, got %v", err)
			}
		})
	}
}

func TestReadBlockTableErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown-magic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString("ABCD")
		_ = binary.Write(&buf, binary.LittleEndian, int32(8))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrBlockTableUnknownMagic) {
			t.Fatalf("expected ErrBlockTableUnknownMagic, got %v", err)
		}
	})

	t.Run("negative-size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString(blockMagicCOPY)
		_ = binary.Write(&buf, binary.LittleEndian, int32(-1))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrBlockTableInvalidSize) {
			t.Fatalf("expected ErrBlockTableInvalidSize, got %v", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := readBlockTable(bytes.NewReader([]byte("COP")), 1)
		if !errors.Is(err, ErrBlockTableRead) {
			t.Fatalf("expected ErrBlockTableRead, got %v", err)
		}
	})
}

func TestWriteEDDSRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
	}{
		{name: "copy-blocks", size: 8},
		{name: "lz4-blocks", size: 64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := solidBuffer(t, tc.size, tc.size, colorOpaqueBlue)
			want := clonePix(src)

			var buf bytes.Buffer
			opts := Options{Mipmaps: true, Container: ContainerEDDS}
			if err := Encode(&buf, []*PixelBuffer{src}, opts); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			data := buf.Bytes()
			if got := u32At(data, offReserved1+4); got != makeFourCC('E', 'N', 'F', '1') {
				t.Fatalf("missing ENF1 marker, got 0x%x", got)
			}

			count, err := calculateMipMapCount(tc.size, tc.size)
			if err != nil {
				t.Fatalf("calculateMipMapCount: %v", err)
			}
			if got := u32At(data, offMipMapCount); int(got) != count {
				t.Fatalf("mip count %d, want %d", got, count)
			}

			// table entries are ordered smallest level first
			last := dataOffset + (count-1)*8
			magic := string(data[last : last+4])
			wantMagic := blockMagicCOPY
			if tc.size*tc.size*4 >= minLZ4BlockSize {
				wantMagic = blockMagicLZ4
			}
			if magic != wantMagic {
				t.Fatalf("level 0 block %q, want %q", magic, wantMagic)
			}

			got, err := decodeDDS(bufio.NewReader(bytes.NewReader(data)), true, int64(len(data)))
			if err != nil {
				t.Fatalf("decodeDDS: %v", err)
			}
			if !bytes.Equal(got.Pix(), want) {
				t.Fatalf("EDDS round-trip pixel mismatch")
			}
		})
	}
}

func TestWriteEDDSRejectsFaces(t *testing.T) {
	t.Parallel()

	tex := &texture{
		width:  4,
		height: 4,
		format: bcn.FormatBGRA8,
		faces:  [][][]byte{{make([]byte, 64)}, {make([]byte, 64)}},
		layout: headerLayout{mipMapCount: 1, enfusion: true},
	}
	if err := writeEDDS(&bytes.Buffer{}, tex); !errors.Is(err, ErrContainerFaces) {
		t.Fatalf("expected ErrContainerFaces, got %v", err)
	}
}
