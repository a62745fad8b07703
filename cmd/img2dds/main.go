// img2dds converts images into DDS textures.
//
// Usage:
//
//	img2dds [flags] input...              # one texture per input
//	img2dds -cube -o sky.dds px nx py ny pz nz
//	img2dds -array -o layers.dds a.png b.png
//	img2dds -manifest textures.yaml
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/woozymasta/img2dds"
)

const usageStr = `img2dds converts images into DDS textures.

Usage:

    img2dds [flags] input...
    img2dds -cube -o out.dds +x -x +y -y +z -z
    img2dds -array -o out.dds layer0 layer1 ...
    img2dds -manifest textures.yaml

Inputs may be PNG, JPEG, GIF, BMP, TIFF, WebP, TGA, DDS or EDDS. DDS inputs are
copied unchanged unless -edds is given, which needs an uncompressed source.

Flags:
`

var (
	outputFlag       = flag.String("o", "", "output file, or directory for per-input conversion")
	manifestFlag     = flag.String("manifest", "", "YAML build manifest")
	cubeFlag         = flag.Bool("cube", false, "build a cube map from six inputs (+x -x +y -y +z -z)")
	arrayFlag        = flag.Bool("array", false, "build an array texture from all inputs")
	normalFlag       = flag.Bool("normal", false, "mark texture as a normal map")
	detectNormalFlag = flag.Bool("detect-normal", false, "mark texture as a normal map when it looks like one")
	mipmapsFlag      = flag.Bool("mipmaps", false, "generate mipmaps")
	compressFlag     = flag.Bool("compress", false, "DXT1/DXT5 block compression")
	flipFlag         = flag.Bool("flip", false, "flip vertically")
	flopFlag         = flag.Bool("flop", false, "flip horizontally")
	yyyxFlag         = flag.Bool("yyyx", false, "RGBA -> GGGR swizzle (DXT5nm)")
	zyzxFlag         = flag.Bool("zyzx", false, "RGBA -> BGBR swizzle (DXT5nm+z)")
	eddsFlag         = flag.Bool("edds", false, "write Enfusion EDDS instead of DDS")
	workersFlag      = flag.Int("workers", 0, "faces processed concurrently (0 = all CPUs)")
	verboseFlag      = flag.Bool("v", false, "log every written texture")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("img2dds: ")

	flag.Usage = func() {
		_, _ = os.Stderr.WriteString(usageStr)
		flag.PrintDefaults()
	}
	flag.Parse()

	img2dds.Init()
	failed := run()
	img2dds.Destroy()

	if failed > 0 {
		log.Printf("%d texture(s) failed", failed)
		os.Exit(1)
	}
}

// run performs the requested builds and returns the number of failures.
func run() int {
	if *manifestFlag != "" {
		m, err := loadManifest(*manifestFlag)
		if err != nil {
			log.Print(err)
			return 1
		}
		return runJobs(m.resolve(filepath.Dir(*manifestFlag)), optionsFromFlags())
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		flag.Usage()
		return 1
	}

	opts := optionsFromFlags()
	if *cubeFlag || *arrayFlag {
		if *outputFlag == "" {
			log.Print("-o is required with -cube and -array")
			return 1
		}
		return runJobs([]job{{Output: *outputFlag, Inputs: inputs}}, opts)
	}

	failed := 0
	for _, in := range inputs {
		dest := *outputFlag
		if dest == "" {
			dest = filepath.Dir(in)
		} else if len(inputs) > 1 {
			if fi, err := os.Stat(dest); err != nil || !fi.IsDir() {
				log.Printf("-o must be a directory for %d inputs", len(inputs))
				return len(inputs)
			}
		}

		if err := img2dds.ConvertToDDS(in, opts, dest); err != nil {
			log.Printf("%s: %v", in, err)
			failed++
			continue
		}
		if *verboseFlag {
			log.Printf("converted %s", in)
		}
	}

	return failed
}

// runJobs builds every job with base options plus the job overrides.
func runJobs(jobs []job, base img2dds.Options) int {
	failed := 0
	for i, j := range jobs {
		if err := runJob(j, base); err != nil {
			log.Printf("job %d (%s): %v", i, j.Output, err)
			failed++
			continue
		}
		if *verboseFlag {
			log.Printf("wrote %s (%d input(s))", j.Output, len(j.Inputs))
		}
	}

	return failed
}

func runJob(j job, base img2dds.Options) error {
	opts, err := j.options(base)
	if err != nil {
		return err
	}
	if len(j.Inputs) == 0 {
		return errors.New("no inputs")
	}
	if len(j.Inputs) == 1 && !opts.CubeMap {
		return img2dds.ConvertToDDS(j.Inputs[0], opts, j.Output)
	}

	faces := make([]*img2dds.PixelBuffer, 0, len(j.Inputs))
	for _, in := range j.Inputs {
		b, err := img2dds.LoadImage(in)
		if err != nil {
			return err
		}
		faces = append(faces, b)
	}

	return img2dds.CreateDDS(faces, opts, j.Output)
}

func optionsFromFlags() img2dds.Options {
	opts := img2dds.Options{
		CubeMap:         *cubeFlag,
		NormalMap:       *normalFlag,
		DetectNormalMap: *detectNormalFlag,
		Mipmaps:         *mipmapsFlag,
		Compress:        *compressFlag,
		Flip:            *flipFlag,
		Flop:            *flopFlag,
		SwizzleYYYX:     *yyyxFlag,
		SwizzleZYZX:     *zyzxFlag,
		Workers:         *workersFlag,
	}
	if *eddsFlag {
		opts.Container = img2dds.ContainerEDDS
	}

	return opts
}
