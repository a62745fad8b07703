package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/img2dds"
)

// manifest lists textures to build, e.g.
//
//	defaults:
//	  mipmaps: true
//	  compress: true
//	jobs:
//	  - output: sky.dds
//	    cube: true
//	    inputs: [px.png, nx.png, py.png, ny.png, pz.png, nz.png]
//	  - output: rock_n.dds
//	    swizzle: yyyx
//	    inputs: [rock_n.png]
type manifest struct {
	Defaults jobOptions `yaml:"defaults"`
	Jobs     []job      `yaml:"jobs"`
}

// jobOptions overrides build options; unset fields keep the inherited value.
type jobOptions struct {
	CubeMap         *bool  `yaml:"cube,omitempty"`
	NormalMap       *bool  `yaml:"normal,omitempty"`
	DetectNormalMap *bool  `yaml:"detectNormal,omitempty"`
	Mipmaps         *bool  `yaml:"mipmaps,omitempty"`
	Compress        *bool  `yaml:"compress,omitempty"`
	Flip            *bool  `yaml:"flip,omitempty"`
	Flop            *bool  `yaml:"flop,omitempty"`
	Swizzle         string `yaml:"swizzle,omitempty"`
	Container       string `yaml:"container,omitempty"`
}

type job struct {
	Output     string   `yaml:"output"`
	Inputs     []string `yaml:"inputs"`
	jobOptions `yaml:",inline"`

	defaults jobOptions
}

func loadManifest(path string) (*manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open manifest %s", path)
	}
	defer func() { _ = f.Close() }()

	var m manifest
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}
	for i, j := range m.Jobs {
		if j.Output == "" {
			return nil, errors.Errorf("manifest %s: job %d has no output", path, i)
		}
	}

	return &m, nil
}

// resolve makes job paths relative to dir and attaches the defaults.
func (m *manifest) resolve(dir string) []job {
	jobs := make([]job, len(m.Jobs))
	for i, j := range m.Jobs {
		j.Output = joinRelative(dir, j.Output)
		inputs := make([]string, len(j.Inputs))
		for k, in := range j.Inputs {
			inputs[k] = joinRelative(dir, in)
		}
		j.Inputs = inputs
		j.defaults = m.Defaults
		jobs[i] = j
	}

	return jobs
}

func joinRelative(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}

// options applies the manifest defaults, then the job overrides, to base.
func (j job) options(base img2dds.Options) (img2dds.Options, error) {
	opts, err := j.defaults.apply(base)
	if err != nil {
		return opts, errors.Wrap(err, "defaults")
	}

	return j.jobOptions.apply(opts)
}

func (o jobOptions) apply(opts img2dds.Options) (img2dds.Options, error) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&opts.CubeMap, o.CubeMap)
	set(&opts.NormalMap, o.NormalMap)
	set(&opts.DetectNormalMap, o.DetectNormalMap)
	set(&opts.Mipmaps, o.Mipmaps)
	set(&opts.Compress, o.Compress)
	set(&opts.Flip, o.Flip)
	set(&opts.Flop, o.Flop)

	switch strings.ToLower(o.Swizzle) {
	case "":
	case "none":
		opts.SwizzleYYYX, opts.SwizzleZYZX = false, false
	case "yyyx":
		opts.SwizzleYYYX, opts.SwizzleZYZX = true, false
	case "zyzx":
		opts.SwizzleYYYX, opts.SwizzleZYZX = false, true
	default:
		return opts, errors.Errorf("unknown swizzle %q", o.Swizzle)
	}

	switch strings.ToLower(o.Container) {
	case "":
	case "dds":
		opts.Container = img2dds.ContainerDDS
	case "edds":
		opts.Container = img2dds.ContainerEDDS
	default:
		return opts, errors.Errorf("unknown container %q", o.Container)
	}

	return opts, nil
}
