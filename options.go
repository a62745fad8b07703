package img2dds

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// Container selects the output file layout.
type Container uint8

const (
	// ContainerDDS writes a plain DDS file.
	ContainerDDS Container = iota
	// ContainerEDDS writes an Enfusion EDDS file (single face only).
	ContainerEDDS
)

// String returns the container name.
func (c Container) String() string {
	switch c {
	case ContainerDDS:
		return "DDS"
	case ContainerEDDS:
		return "EDDS"
	default:
		return fmt.Sprintf("Container(%d)", uint8(c))
	}
}

// Ext returns the file extension used for the container.
func (c Container) Ext() string {
	if c == ContainerEDDS {
		return ".edds"
	}

	return ".dds"
}

// Options controls a build.
type Options struct {
	// CubeMap builds a cube map from exactly six faces ordered
	// +x, -x, +y, -y, +z, -z.
	CubeMap bool
	// NormalMap sets DDPF_NORMAL in the pixel format.
	NormalMap bool
	// DetectNormalMap sets DDPF_NORMAL when every face looks like a
	// tangent-space normal map (see LooksLikeNormalMap).
	DetectNormalMap bool
	// Mipmaps generates a full mip chain down to 1x1.
	Mipmaps bool
	// Compress enables DXT1 (opaque) or DXT5 (alpha) block compression.
	Compress bool
	// Flip mirrors every face vertically.
	Flip bool
	// Flop mirrors every face horizontally.
	Flop bool
	// SwizzleYYYX rewrites RGBA to GGGR (DXT5nm).
	SwizzleYYYX bool
	// SwizzleZYZX rewrites RGBA to BGBR (DXT5nm+z).
	SwizzleZYZX bool

	// Container selects DDS (default) or EDDS output.
	Container Container
	// Compressor overrides the built-in block compressor.
	Compressor Compressor
	// EncodeOptions are passed to the built-in bcn compressor.
	// Nil selects the highest quality level.
	EncodeOptions *bcn.EncodeOptions
	// Workers bounds the number of faces processed concurrently.
	// 0 means GOMAXPROCS.
	Workers int
}

// Validate checks option consistency for a build of faceCount faces.
func (o *Options) Validate(faceCount int) error {
	if faceCount < 1 {
		return ErrNoFaces
	}
	if o.SwizzleYYYX && o.SwizzleZYZX {
		return ErrConflictingSwizzle
	}
	if o.CubeMap && faceCount != 6 {
		return fmt.Errorf("%w: got %d", ErrCubeMapFaceCount, faceCount)
	}

	switch o.Container {
	case ContainerDDS:
	case ContainerEDDS:
		if faceCount != 1 || o.CubeMap {
			return fmt.Errorf("%w: got %d faces", ErrContainerFaces, faceCount)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidContainer, o.Container)
	}

	if o.Compress && o.compressor() == nil {
		return ErrCompressionUnavailable
	}

	return nil
}

func (o *Options) swizzleMode() SwizzleMode {
	switch {
	case o.SwizzleYYYX:
		return SwizzleYYYX
	case o.SwizzleZYZX:
		return SwizzleZYZX
	default:
		return SwizzleNone
	}
}

// compressor returns the compressor for this build, nil when unavailable.
func (o *Options) compressor() Compressor {
	if o.Compressor != nil {
		return o.Compressor
	}

	return defaultCompressor(o.EncodeOptions)
}
