package img2dds

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/woozymasta/bcn"
)

// CreateDDS builds a texture from faces and writes it to dest.
//
// One face makes a 2D texture, six faces with opts.CubeMap a cube map
// (+x, -x, +y, -y, +z, -z), any other count an array. All faces must have
// the same size. Options and faces are validated before any pixel work. The
// faces are consumed: on return they are empty. dest is replaced only when
// the whole build succeeded.
func CreateDDS(faces []*PixelBuffer, opts Options, dest string) error {
	tex, err := build(faces, opts)
	if err != nil {
		return err
	}

	return writeFileAtomic(dest, func(w io.Writer) error {
		return serialize(w, tex, opts.Container)
	})
}

// Encode is CreateDDS streaming to w instead of a file.
func Encode(w io.Writer, faces []*PixelBuffer, opts Options) error {
	tex, err := build(faces, opts)
	if err != nil {
		return err
	}

	return serialize(w, tex, opts.Container)
}

// ConvertToDDS converts one image file into a single-layer texture.
//
// When dest is an existing directory the output is dest/<stem>.dds (or
// .edds). A source that already is a DDS file is copied unchanged when
// writing DDS. Transparency is detected while decoding.
func ConvertToDDS(src string, opts Options, dest string) error {
	if err := opts.Validate(1); err != nil {
		return err
	}

	dest = resolveDestination(src, dest, opts.Container)
	if opts.Container == ContainerDDS && !isEDDSPath(src) && isDDSFile(src) {
		return copyFile(src, dest)
	}

	img, err := LoadImage(src)
	if err != nil {
		return err
	}

	return CreateDDS([]*PixelBuffer{img}, opts, dest)
}

// resolveDestination maps a directory destination to <dir>/<stem><ext>.
func resolveDestination(src, dest string, container Container) string {
	fi, err := os.Stat(dest)
	if err != nil || !fi.IsDir() {
		return dest
	}

	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dest, stem+container.Ext())
}

// copyFile copies src to dest byte for byte.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOpenFile, src, err)
	}
	defer func() { _ = in.Close() }()

	return writeFileAtomic(dest, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrCopySource, src, err)
		}
		return nil
	})
}

func serialize(w io.Writer, tex *texture, container Container) error {
	if container == ContainerEDDS {
		return writeEDDS(w, tex)
	}

	return writeDDS(w, tex)
}

// checkFaces validates face presence and dimensions.
func checkFaces(faces []*PixelBuffer, cubeMap bool) error {
	for i, f := range faces {
		if f.IsEmpty() {
			return fmt.Errorf("%w: face %d", ErrEmptyImage, i)
		}
		if !f.sameSize(faces[0]) {
			return fmt.Errorf("%w: face %d is %dx%d, face 0 is %dx%d",
				ErrFaceSizeMismatch, i, f.width, f.height, faces[0].width, faces[0].height)
		}
	}
	if cubeMap && faces[0].width != faces[0].height {
		return fmt.Errorf("%w: %dx%d", ErrCubeMapNotSquare, faces[0].width, faces[0].height)
	}

	return nil
}

// build runs the pipeline: validate, analyze, swizzle, mipmaps, compress.
func build(faces []*PixelBuffer, opts Options) (*texture, error) {
	if err := opts.Validate(len(faces)); err != nil {
		return nil, err
	}
	if err := checkFaces(faces, opts.CubeMap); err != nil {
		return nil, err
	}

	owned := make([]*PixelBuffer, len(faces))
	for i, f := range faces {
		owned[i] = f.Move()
	}
	defer func() {
		for _, f := range owned {
			f.Release()
		}
	}()

	width, height := owned[0].width, owned[0].height
	swizzle := opts.swizzleMode()

	// analyze
	looksNormal := make([]bool, len(owned))
	err := forEachFace(len(owned), opts.Workers, func(i int) error {
		f := owned[i]
		if opts.Flip {
			FlipVertical(f)
		}
		if opts.Flop {
			FlipHorizontal(f)
		}
		AnalyzeAlpha(f)
		if opts.DetectNormalMap {
			looksNormal[i] = LooksLikeNormalMap(f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// swizzled normal maps keep X in alpha
	hasAlpha := swizzle != SwizzleNone
	normalMap := opts.NormalMap
	detected := opts.DetectNormalMap
	for i, f := range owned {
		hasAlpha = hasAlpha || f.HasAlpha()
		detected = detected && looksNormal[i]
	}
	normalMap = normalMap || detected

	format := selectFormat(opts.Compress, hasAlpha)
	if !opts.Compress && opts.Container == ContainerEDDS {
		format = bcn.FormatBGRA8
	}
	var compressor Compressor
	if opts.Compress {
		compressor = opts.compressor()
	}

	mipMapCount := 1
	if opts.Mipmaps {
		if mipMapCount, err = calculateMipMapCount(width, height); err != nil {
			return nil, err
		}
	}

	payloads := make([][][]byte, len(owned))
	err = forEachFace(len(owned), opts.Workers, func(i int) error {
		f := owned[i]
		if err := Swizzle(f, swizzle); err != nil {
			return err
		}

		levels := []*PixelBuffer{f.Move()}
		if opts.Mipmaps {
			var err error
			if levels, err = GenerateMipmaps(levels[0]); err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
		}

		face := make([][]byte, len(levels))
		for l, level := range levels {
			switch {
			case compressor != nil:
				data, err := compressLevel(compressor, level, format)
				if err != nil {
					return fmt.Errorf("face %d mipmap %d: %w", i, l, err)
				}
				face[l] = data
				level.Release()
			case format == bcn.FormatBGRA8:
				face[l] = swapRedBlue(level.pix)
				level.Release()
			default:
				face[l] = level.Move().pix
			}
		}
		payloads[i] = face
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &texture{
		width:  width,
		height: height,
		format: format,
		faces:  payloads,
		layout: headerLayout{
			mipMapCount: mipMapCount,
			hasAlpha:    hasAlpha,
			normalMap:   normalMap,
			cubeMap:     opts.CubeMap,
			enfusion:    opts.Container == ContainerEDDS,
		},
	}, nil
}

// swapRedBlue returns a copy of RGBA pixels reordered as BGRA.
func swapRedBlue(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i < len(pix); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = pix[i+2], pix[i+1], pix[i], pix[i+3]
	}

	return out
}

// forEachFace runs fn for faces 0..n-1 on at most workers goroutines and
// returns the error of the lowest failing face.
func forEachFace(n, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	errs := make([]error, n)
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				errs[i] = fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
