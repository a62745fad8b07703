/*
Package img2dds builds DDS (DirectDraw Surface) textures from RGBA pixel
buffers at asset build time.

A build takes one face (plain 2D texture), six faces (cube map, ordered
+x, -x, +y, -y, +z, -z) or N faces (array) of identical size, then runs:
alpha analysis, optional flip and normal-map channel swizzle, Lanczos-3
mipmap generation, optional DXT1/DXT5 block compression, and serialization
into a DDS container. Output is written to a temporary file and renamed
into place, so a failed build never leaves a half-written texture behind.

Single-face textures may also be written as EDDS (Enfusion DDS), where each
mip level is stored as a COPY or LZ4 chunk-stream block.

Source files are decoded with LoadImage between Init and Destroy. PNG, JPEG,
GIF, BMP, TIFF, WebP and TGA are supported, as are uncompressed 32-bit DDS/EDDS
sources (largest level only). Block-compressed sources are never decoded:
ConvertToDDS copies sources that already are DDS unchanged.
*/
package img2dds
