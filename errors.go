package img2dds

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrInput indicates unusable input: bad source file, faces or options.
	ErrInput = errors.New("input error")
	// ErrCapability indicates a requested feature is not available in this build.
	ErrCapability = errors.New("capability error")
	// ErrIO indicates the destination could not be written.
	ErrIO = errors.New("I/O error")
)

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = fmt.Errorf("%w: size overflow", ErrInput)
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = fmt.Errorf("%w: invalid dimensions", ErrInput)
	// ErrEmptyImage indicates a face without pixel data.
	ErrEmptyImage = fmt.Errorf("%w: empty image", ErrInput)
	// ErrNoFaces indicates a build without any input face.
	ErrNoFaces = fmt.Errorf("%w: no faces", ErrInput)
	// ErrCubeMapFaceCount indicates a cube map without exactly six faces.
	ErrCubeMapFaceCount = fmt.Errorf("%w: cube map requires exactly 6 faces", ErrInput)
	// ErrCubeMapNotSquare indicates non-square cube map faces.
	ErrCubeMapNotSquare = fmt.Errorf("%w: cube map faces must be square", ErrInput)
	// ErrFaceSizeMismatch indicates faces of different dimensions.
	ErrFaceSizeMismatch = fmt.Errorf("%w: face dimensions differ", ErrInput)
	// ErrConflictingSwizzle indicates both YYYX and ZYZX swizzles were requested.
	ErrConflictingSwizzle = fmt.Errorf("%w: YYYX and ZYZX swizzles are mutually exclusive", ErrInput)
	// ErrContainerFaces indicates a multi-face texture for a single-face container.
	ErrContainerFaces = fmt.Errorf("%w: EDDS supports a single face only", ErrInput)
	// ErrInvalidContainer indicates an unknown output container.
	ErrInvalidContainer = fmt.Errorf("%w: invalid container", ErrInput)
	// ErrInvalidSwizzle indicates an unknown swizzle mode.
	ErrInvalidSwizzle = fmt.Errorf("%w: invalid swizzle mode", ErrInput)
	// ErrInvalidFormat indicates unsupported format.
	ErrInvalidFormat = fmt.Errorf("%w: invalid format", ErrInput)
	// ErrDecoderNotInitialized indicates LoadImage outside Init/Destroy.
	ErrDecoderNotInitialized = fmt.Errorf("%w: decoder not initialized", ErrInput)
	// ErrOpenFile indicates source file open failed.
	ErrOpenFile = fmt.Errorf("%w: open file failed", ErrInput)
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = fmt.Errorf("%w: decode image failed", ErrInput)
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = fmt.Errorf("%w: reading DDS header failed", ErrInput)
	// ErrDDSDX10Read indicates DDS DX10 header read failed.
	ErrDDSDX10Read = fmt.Errorf("%w: reading DDS DX10 header failed", ErrInput)
	// ErrUnknownFormat indicates unsupported DDS/EDDS source format.
	ErrUnknownFormat = fmt.Errorf("%w: unknown format", ErrInput)
	// ErrCompressedSource indicates a block-compressed DDS/EDDS source.
	ErrCompressedSource = fmt.Errorf("%w: block-compressed sources are not decoded", ErrInput)
	// ErrCorruptSource indicates a DDS/EDDS source whose header disagrees
	// with its dimensions or the file size.
	ErrCorruptSource = fmt.Errorf("%w: corrupt source", ErrInput)
	// ErrReadPayload indicates a DDS source payload read failed.
	ErrReadPayload = fmt.Errorf("%w: reading DDS payload failed", ErrInput)

	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = fmt.Errorf("%w: COPY block size mismatch", ErrInput)
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = fmt.Errorf("%w: unknown block magic", ErrInput)
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = fmt.Errorf("%w: invalid target size", ErrInput)
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = fmt.Errorf("%w: LZ4 chunk-stream truncated", ErrInput)
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = fmt.Errorf("%w: unknown LZ4 flags", ErrInput)
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = fmt.Errorf("%w: invalid compressed chunk size", ErrInput)
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = fmt.Errorf("%w: decoded LZ4 overruns target buffer", ErrInput)
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = fmt.Errorf("%w: LZ4 decode failed", ErrInput)
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = fmt.Errorf("%w: LZ4 decoded size mismatch", ErrInput)
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = fmt.Errorf("%w: LZ4 block length mismatch", ErrInput)
	// ErrBlockTableRead indicates block table read failed.
	ErrBlockTableRead = fmt.Errorf("%w: reading block table failed", ErrInput)
	// ErrBlockTableUnknownMagic indicates unknown block magic in table.
	ErrBlockTableUnknownMagic = fmt.Errorf("%w: unknown block magic in table", ErrInput)
	// ErrBlockTableInvalidSize indicates invalid size in block table.
	ErrBlockTableInvalidSize = fmt.Errorf("%w: invalid block size in table", ErrInput)
	// ErrBlockBodyRead indicates block body read failed.
	ErrBlockBodyRead = fmt.Errorf("%w: reading block body failed", ErrInput)

	// ErrCompressionUnavailable indicates block compression is not built in.
	ErrCompressionUnavailable = fmt.Errorf("%w: block compression unavailable", ErrCapability)
	// ErrCompressImage indicates the block compressor failed.
	ErrCompressImage = fmt.Errorf("%w: block compression failed", ErrCapability)
	// ErrCompressedSizeMismatch indicates a compressor returned a payload of unexpected size.
	ErrCompressedSizeMismatch = fmt.Errorf("%w: compressed payload size mismatch", ErrCapability)
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = fmt.Errorf("%w: LZ4 compression failed", ErrCapability)
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = fmt.Errorf("%w: compressed chunk too large", ErrCapability)

	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = fmt.Errorf("%w: create file failed", ErrIO)
	// ErrWriteFile indicates writing the destination failed.
	ErrWriteFile = fmt.Errorf("%w: write file failed", ErrIO)
	// ErrCommitFile indicates the final rename into place failed.
	ErrCommitFile = fmt.Errorf("%w: commit file failed", ErrIO)
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = fmt.Errorf("%w: writing DDS magic failed", ErrIO)
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = fmt.Errorf("%w: writing DDS header failed", ErrIO)
	// ErrWritePayload indicates a level payload write failed.
	ErrWritePayload = fmt.Errorf("%w: writing payload failed", ErrIO)
	// ErrWriteBlockTable indicates an EDDS block table write failed.
	ErrWriteBlockTable = fmt.Errorf("%w: writing block table failed", ErrIO)
	// ErrWriteBlockData indicates an EDDS block body write failed.
	ErrWriteBlockData = fmt.Errorf("%w: writing block data failed", ErrIO)
	// ErrCopySource indicates a DDS pass-through copy failed.
	ErrCopySource = fmt.Errorf("%w: copying source failed", ErrIO)
)
