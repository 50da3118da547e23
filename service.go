package helpmaker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-helpmaker/internal/assets"
	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/logging"
	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/pipeline"
	"github.com/alnah/go-helpmaker/internal/resources"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ markup.Handler                = (*resources.Relocator)(nil)
)

// Service compiles help sources into an archive.
// Create with New(), then call Run, Build, Rebuild or Clean.
type Service struct {
	cfg           serviceConfig
	logger        *slog.Logger
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	packager      *Packager
}

// New creates a Service with default configuration.
// Returns error if the extension is invalid or the page assets cannot be loaded.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg:          defaultServiceConfig(),
		logger:       logging.NewNop(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := fileutil.ValidateExtension(s.cfg.extension); err != nil {
		return nil, fmt.Errorf("input extension %q: %w", s.cfg.extension, err)
	}

	if s.htmlConverter == nil {
		s.htmlConverter = pipeline.NewGoldmarkConverter(s.cfg.markdown)
	}

	resolver, err := assets.NewAssetResolver(s.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	page, err := assets.LoadPage(resolver, s.cfg.template, s.cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	s.packager = NewPackager(page, s.cfg.manifest, logging.NewComponentLogger(s.logger, "package"))

	return s, nil
}

// Build compiles inputDir into outFile. The build is skipped when the
// archive is newer than every source, unless WithForce is set.
func (s *Service) Build(ctx context.Context, outFile, inputDir string) (*BuildResult, error) {
	return s.Run(ctx, Job{Type: JobBuild, OutFile: outFile, InputDir: inputDir})
}

// Rebuild cleans, then builds unconditionally.
func (s *Service) Rebuild(ctx context.Context, outFile, inputDir string) (*BuildResult, error) {
	return s.Run(ctx, Job{Type: JobRebuild, OutFile: outFile, InputDir: inputDir})
}

// Clean removes the archive and the working directory.
func (s *Service) Clean(ctx context.Context, outFile string) error {
	_, err := s.Run(ctx, Job{Type: JobClean, OutFile: outFile})
	return err
}

// Run executes a job. Without a configured working directory, a temporary
// one is created for a build and removed afterwards. Cleaning never creates
// one.
func (s *Service) Run(ctx context.Context, job Job) (*BuildResult, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	jobType, _ := ParseJobType(string(job.Type))

	if jobType == JobClean {
		workDir, err := s.configuredWorkDir()
		if err != nil {
			return nil, err
		}
		s.logStart(jobType, workDir, job)
		logging.Notice(s.logger, "cleaning")
		if err := Clean(job.OutFile, workDir, s.logger); err != nil {
			return nil, err
		}
		return &BuildResult{OutFile: job.OutFile, WorkDir: workDir}, nil
	}

	workDir, cleanup, err := s.resolveWorkDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()
	s.logStart(jobType, workDir, job)

	if jobType == JobRebuild {
		logging.Notice(s.logger, "rebuilding")
		if err := Clean(job.OutFile, workDir, s.logger); err != nil {
			return nil, err
		}
		return s.build(ctx, job, workDir, true)
	}
	return s.build(ctx, job, workDir, s.cfg.force)
}

func (s *Service) logStart(jobType JobType, workDir string, job Job) {
	s.logger.Info("starting job",
		slog.String("job", string(jobType)),
		slog.String("workdir", workDir),
		slog.String("outfile", job.OutFile),
		slog.String("input", job.InputDir))
}

// configuredWorkDir returns the configured working directory as an absolute
// path, or "" when none is set.
func (s *Service) configuredWorkDir() (string, error) {
	if s.cfg.workDir == "" {
		return "", nil
	}
	abs, err := filepath.Abs(s.cfg.workDir)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return abs, nil
}

// resolveWorkDir returns the configured working directory, or a fresh
// temporary one together with its removal.
func (s *Service) resolveWorkDir() (string, func(), error) {
	if s.cfg.workDir != "" {
		dir, err := s.configuredWorkDir()
		if err != nil {
			return "", nil, err
		}
		return dir, func() {}, nil
	}

	s.logger.Info("no working directory set, creating one in system temp")
	dir, err := os.MkdirTemp("", "helpmaker-")
	if err != nil {
		return "", nil, fmt.Errorf("creating working directory: %w", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("removing temporary working directory", "path", dir, "error", err)
		}
	}, nil
}

func (s *Service) build(ctx context.Context, job Job, workDir string, force bool) (*BuildResult, error) {
	logging.Notice(s.logger, "building")
	result := &BuildResult{OutFile: job.OutFile, WorkDir: workDir}

	inputDir, err := filepath.Abs(job.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputDir, err)
	}
	inputs, err := DiscoverInputs(inputDir, s.cfg.extension)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no *%s files in %s", ErrNoInputs, s.cfg.extension, inputDir)
	}

	if !force {
		stale, err := ShouldBuild(job.OutFile, inputDir, s.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		if !stale {
			logging.Notice(s.logger, "archive is up to date", "path", job.OutFile)
			result.UpToDate = true
			return result, nil
		}
	}

	lock, err := lockWorkDir(workDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release working directory lock", "error", err)
		}
	}()

	paths, err := GeneratePaths(workDir)
	if err != nil {
		return nil, err
	}
	if err := resetStages(paths, s.logger); err != nil {
		return nil, err
	}

	controls := &markup.ControlList{}
	s.logger.Info("processing input files", slog.Int("count", len(inputs)))
	for _, src := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, res, err := s.processFile(ctx, src, inputDir, paths, controls)
		if err != nil {
			if isRunFatal(ctx, err) {
				return nil, err
			}
			s.logger.Error("skipping file",
				slog.String("file", src),
				slog.String("kind", ErrorKind(err)),
				slog.String("error", err.Error()),
				slog.String("trace", ErrorTrace(err)))
			result.Failures = append(result.Failures, FileFailure{Source: src, Err: err})
			continue
		}
		result.Documents = append(result.Documents, doc)
		result.Resources = append(result.Resources, res...)
	}
	result.Controls = controls.Entries()

	if err := s.packager.Package(job.OutFile, paths, result.Documents, result.Controls); err != nil {
		return nil, err
	}
	return result, nil
}

// isRunFatal reports whether err stops the whole build rather than one file.
func isRunFatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, ErrMissingResource) ||
		errors.Is(err, ErrNotDirectory)
}

// processFile runs the three stages for one source file.
func (s *Service) processFile(ctx context.Context, src, inputDir string, paths StagingPaths, controls *markup.ControlList) (Document, []Resource, error) {
	s.logger.Info("processing", slog.String("file", src))
	doc := Document{Source: src}
	wrap := func(err error) error {
		return &StageError{Stage: "file", Path: src, Err: err}
	}

	s.logger.Debug("stage 1", slog.String("file", src))
	fm, stage1, err := s.convert(ctx, src, inputDir, paths[StageConvert])
	if err != nil {
		return doc, nil, wrap(err)
	}
	doc.Stage1 = stage1
	doc.Title = fm.Title

	s.logger.Debug("stage 2", slog.String("file", stage1))
	stage2, control, err := s.extract(stage1, paths, controls)
	if err != nil {
		return doc, nil, wrap(err)
	}
	doc.Stage2 = stage2
	doc.Control = control

	s.logger.Debug("stage 3", slog.String("file", stage2))
	res, err := s.relocate(stage2, inputDir, paths[StageRelocate])
	if err != nil {
		return doc, nil, wrap(err)
	}
	return doc, res, nil
}

// convert turns a help source into an HTML fragment under stageDir.
// A frontmatter control key becomes an inline control element.
func (s *Service) convert(ctx context.Context, src, inputDir, stageDir string) (pipeline.FrontMatter, string, error) {
	fail := func(err error) (pipeline.FrontMatter, string, error) {
		return pipeline.FrontMatter{}, "", &StageError{Stage: string(StageConvert), Path: src, Err: err}
	}

	raw, err := os.ReadFile(src) // #nosec G304 -- discovered under the input directory
	if err != nil {
		return fail(err)
	}
	fm, body, err := pipeline.SplitFrontMatter(raw)
	if err != nil {
		return fail(err)
	}

	content, err := s.htmlConverter.ToHTML(ctx, s.preprocessor.PreprocessMarkdown(string(body)))
	if err != nil {
		return fail(err)
	}
	if fm.Control != "" {
		content = s.cfg.control.Render(fm.Control) + "\n" + content
	}

	out, err := ChangeFilename(src, ".stage1", inputDir, stageDir)
	if err != nil {
		return fail(err)
	}
	err = fileutil.WriteFileAtomic(out, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
	if err != nil {
		return fail(err)
	}
	return fm, out, nil
}

// extract strips the control element from a stage-1 document and records
// it in controls.
func (s *Service) extract(stage1 string, paths StagingPaths, controls *markup.ControlList) (string, string, error) {
	fail := func(err error) (string, string, error) {
		return "", "", &StageError{Stage: string(StageExtract), Path: stage1, Err: err}
	}

	out, err := ChangeFilename(stage1, ".stage2", paths[StageConvert], paths[StageExtract])
	if err != nil {
		return fail(err)
	}

	in, err := os.Open(stage1) // #nosec G304 -- staged file
	if err != nil {
		return fail(err)
	}
	defer in.Close()

	logger := logging.NewComponentLogger(s.logger, string(StageExtract))
	var control string
	err = fileutil.WriteFileAtomic(out, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		extractor := markup.NewMetadataExtractor(bw, logger, s.cfg.control, controls, out)
		if err := markup.Feed(in, extractor); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		if err := extractor.Close(); err != nil {
			return err
		}
		if n := extractor.Mismatches(); n > 0 {
			logger.Warn("repaired mismatched end tags", slog.String("file", stage1), slog.Int("count", n))
		}
		control, _ = extractor.Control()
		return nil
	})
	if err != nil {
		return fail(err)
	}
	return out, control, nil
}

// relocate copies the images referenced by a stage-2 document.
func (s *Service) relocate(stage2, inputDir, stageDir string) ([]Resource, error) {
	relocator, err := resources.New(resources.Options{
		InputRoot: inputDir,
		StageDir:  stageDir,
		Tag:       s.cfg.resourceTag,
		Attr:      s.cfg.resourceAttr,
		Logger:    logging.NewComponentLogger(s.logger, string(StageRelocate)),
	})
	if err != nil {
		return nil, err
	}

	in, err := os.Open(stage2) // #nosec G304 -- staged file
	if err != nil {
		return nil, &StageError{Stage: string(StageRelocate), Path: stage2, Err: err}
	}
	defer in.Close()

	if err := markup.Feed(in, relocator); err != nil {
		return nil, &StageError{Stage: string(StageRelocate), Path: stage2, Err: err}
	}
	return relocator.Resources(), nil
}
