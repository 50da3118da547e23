package helpmaker

import (
	"log/slog"

	"github.com/alnah/go-helpmaker/internal/config"
	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/pipeline"
)

// serviceConfig holds the settings applied by Options.
type serviceConfig struct {
	extension    string
	workDir      string // empty = temporary directory per run
	force        bool
	control      markup.ControlSpec
	resourceTag  string
	resourceAttr string
	markdown     pipeline.ConverterOptions
	style        string
	template     string
	assetPath    string
	manifest     string
}

func defaultServiceConfig() serviceConfig {
	cfg := serviceConfig{}
	applyConfig(&cfg, config.DefaultConfig())
	return cfg
}

func applyConfig(dst *serviceConfig, c *config.Config) {
	dst.extension = c.Input.Extension
	dst.workDir = c.Staging.WorkDir
	dst.control = markup.ControlSpec{
		Tag:        c.Control.Tag,
		NameKey:    c.Control.NameKey,
		NameValue:  c.Control.NameValue,
		ContentKey: c.Control.ContentKey,
	}
	dst.resourceTag = c.Resources.Tag
	dst.resourceAttr = c.Resources.Attr
	dst.markdown = pipeline.ConverterOptions{
		Highlight: c.Markdown.Highlight,
		HardWraps: c.Markdown.HardWraps,
	}
	dst.style = c.Archive.Style
	dst.template = c.Archive.Template
	dst.assetPath = c.Archive.AssetPath
	dst.manifest = c.Archive.Manifest
}

// Option configures a Service.
type Option func(*Service)

// WithConfig applies every setting of a loaded configuration file.
// Options given after it override individual settings.
func WithConfig(c *config.Config) Option {
	return func(s *Service) {
		if c != nil {
			applyConfig(&s.cfg, c)
		}
	}
}

// WithLogger sets the logger every stage reports to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkDir sets the working directory holding the staging trees.
// Without it each run uses a temporary directory removed afterwards.
func WithWorkDir(dir string) Option {
	return func(s *Service) {
		s.cfg.workDir = dir
	}
}

// WithForce builds even when the archive is newer than every source.
func WithForce(force bool) Option {
	return func(s *Service) {
		s.cfg.force = force
	}
}

// WithExtension sets the extension of help source files.
func WithExtension(ext string) Option {
	return func(s *Service) {
		s.cfg.extension = ext
	}
}

// WithStyle sets the stylesheet of packaged pages. An empty name disables it.
func WithStyle(name string) Option {
	return func(s *Service) {
		s.cfg.style = name
	}
}

// WithAssetPath sets a directory whose styles and templates override the
// built-in ones.
func WithAssetPath(dir string) Option {
	return func(s *Service) {
		s.cfg.assetPath = dir
	}
}

// WithHTMLConverter replaces the markdown converter.
func WithHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(s *Service) {
		s.htmlConverter = c
	}
}
