package img2dds

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// DDS bits that bcn does not define.
const (
	// ddsPFNormal marks a normal map (NVIDIA DDPF_NORMAL).
	ddsPFNormal = 0x80000000

	ddsCaps2Cubemap          = 0x00000200
	ddsCaps2CubemapPositiveX = 0x00000400
	ddsCaps2CubemapNegativeX = 0x00000800
	ddsCaps2CubemapPositiveY = 0x00001000
	ddsCaps2CubemapNegativeY = 0x00002000
	ddsCaps2CubemapPositiveZ = 0x00004000
	ddsCaps2CubemapNegativeZ = 0x00008000
	ddsCaps2CubemapAllFaces  = ddsCaps2CubemapPositiveX | ddsCaps2CubemapNegativeX |
		ddsCaps2CubemapPositiveY | ddsCaps2CubemapNegativeY |
		ddsCaps2CubemapPositiveZ | ddsCaps2CubemapNegativeZ

	// ddsMagicSize is the length of the "DDS " signature.
	ddsMagicSize = 4
	// ddsDX10HeaderSize is the length of the optional DDS_HEADER_DXT10.
	ddsDX10HeaderSize = 20
)

// ddsPixelFormat is the 32-byte DDS_PIXELFORMAT block.
type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// ddsHeader is the 124-byte DDS_HEADER that follows the magic.
type ddsHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// headerLayout describes what a header must declare besides size and format.
type headerLayout struct {
	mipMapCount int
	hasAlpha    bool
	normalMap   bool
	cubeMap     bool
	enfusion    bool
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		format := mapDxgiFormat(dx10.DXGIFormat)
		return format, fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	if (uint32(pf.Flags) & uint32(bcn.DDSPFFourCC)) != 0 {
		fourCCStr := intToFourCC(pf.FourCC)
		switch fourCCStr {
		case "DXT1":
			return bcn.FormatDXT1, fourCCStr
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCCStr
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCCStr
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCCStr
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCCStr
		default:
			return bcn.FormatUnknown, fourCCStr
		}
	}

	if (uint32(pf.Flags)&uint32(bcn.DDSPFRGB)) != 0 && pf.RGBBitCount == 32 {
		switch {
		case pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 && pf.BBitMask == 0x00ff0000:
			if uint32(pf.Flags)&uint32(bcn.DDSPFAlphaPixels) == 0 {
				return bcn.FormatRGBA8, "RGBX8"
			}
			if pf.ABitMask == 0xff000000 {
				return bcn.FormatRGBA8, "RGBA8"
			}
		case pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 && pf.BBitMask == 0x000000ff:
			if uint32(pf.Flags)&uint32(bcn.DDSPFAlphaPixels) == 0 {
				return bcn.FormatBGRA8, "BGRX8"
			}
			if pf.ABitMask == 0xff000000 {
				return bcn.FormatBGRA8, "BGRA8"
			}
		}
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func mapDxgiFormat(dxgiFormat uint32) bcn.Format {
	switch dxgiFormat {
	case 71:
		return bcn.FormatDXT1
	case 74:
		return bcn.FormatDXT3
	case 77:
		return bcn.FormatDXT5
	case 80:
		return bcn.FormatBC4
	case 83:
		return bcn.FormatBC5
	case 87:
		return bcn.FormatBGRA8
	case 28:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func expectedDataLength(format bcn.Format, width, height int) int {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocksW * blocksH * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocksW * blocksH * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

func enfusionReserved1() [11]uint32 {
	return [11]uint32{
		0,
		0x31464e45, // "ENF1"
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
}

// makeDDSHeader fills a header for a width x height texture in format.
func makeDDSHeader(width, height int, format bcn.Format, layout headerLayout) (*ddsHeader, error) {
	w32, err := u32FromInt(width)
	if err != nil {
		return nil, err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return nil, err
	}
	mip32, err := u32FromInt(layout.mipMapCount)
	if err != nil {
		return nil, err
	}
	if mip32 == 0 {
		return nil, fmt.Errorf("%w: zero mip levels", ErrInvalidDimensions)
	}

	flags := uint32(bcn.DDSFlagCaps) | uint32(bcn.DDSFlagHeight) | uint32(bcn.DDSFlagWidth) |
		uint32(bcn.DDSFlagPixelFormat) | uint32(bcn.DDSFlagMipmapCount)
	caps := uint32(bcn.DDSCapsTexture)
	var caps2 uint32
	if mip32 > 1 {
		caps |= uint32(bcn.DDSCapsComplex) | uint32(bcn.DDSCapsMipmap)
	}
	if layout.cubeMap {
		caps |= uint32(bcn.DDSCapsComplex)
		caps2 |= ddsCaps2Cubemap | ddsCaps2CubemapAllFaces
	}

	hdr := &ddsHeader{
		Size:        uint32(bcn.DDSHeaderSize),
		Flags:       flags,
		Height:      h32,
		Width:       w32,
		MipMapCount: mip32,
		Caps:        caps,
		Caps2:       caps2,
	}
	if layout.enfusion {
		hdr.Reserved1 = enfusionReserved1()
	}
	hdr.PixelFormat.Size = uint32(bcn.DDSPixelFormatSize)

	switch format {
	case bcn.FormatDXT1, bcn.FormatDXT5:
		linearSize, err := u32FromInt(expectedDataLength(format, width, height))
		if err != nil {
			return nil, err
		}
		hdr.Flags |= uint32(bcn.DDSFlagLinearSize)
		hdr.PitchOrLinearSize = linearSize
		hdr.PixelFormat.Flags = uint32(bcn.DDSPFFourCC)
		if format == bcn.FormatDXT1 {
			hdr.PixelFormat.FourCC = makeFourCC('D', 'X', 'T', '1')
		} else {
			hdr.PixelFormat.FourCC = makeFourCC('D', 'X', 'T', '5')
		}
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		pitch, err := u32FromInt(width * 4)
		if err != nil {
			return nil, err
		}
		hdr.Flags |= uint32(bcn.DDSFlagPitch)
		hdr.PitchOrLinearSize = pitch
		hdr.PixelFormat.Flags = uint32(bcn.DDSPFRGB)
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.GBitMask = 0x0000ff00
		if format == bcn.FormatRGBA8 {
			hdr.PixelFormat.RBitMask = 0x000000ff
			hdr.PixelFormat.BBitMask = 0x00ff0000
		} else {
			hdr.PixelFormat.RBitMask = 0x00ff0000
			hdr.PixelFormat.BBitMask = 0x000000ff
		}
		if layout.hasAlpha {
			hdr.PixelFormat.Flags |= uint32(bcn.DDSPFAlphaPixels)
			hdr.PixelFormat.ABitMask = 0xff000000
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}

	if layout.normalMap {
		hdr.PixelFormat.Flags |= ddsPFNormal
	}

	return hdr, nil
}
