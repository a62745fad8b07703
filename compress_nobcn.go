//go:build nobcn

package img2dds

import "github.com/woozymasta/bcn"

// CompressionAvailable reports whether a built-in block compressor exists.
func CompressionAvailable() bool { return false }

// defaultCompressor returns nil: builds with the nobcn tag carry no encoder,
// so compression needs Options.Compressor.
func defaultCompressor(_ *bcn.EncodeOptions) Compressor { return nil }
