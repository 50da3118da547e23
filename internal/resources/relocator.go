// Package resources copies the images referenced by staged help documents
// into the resource staging directory.
package resources

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-helpmaker/internal/fileutil"
	"github.com/alnah/go-helpmaker/internal/logging"
	"github.com/alnah/go-helpmaker/internal/markup"
	"github.com/alnah/go-helpmaker/internal/pipeline"
)

// Sentinel errors for resource relocation.
var (
	// ErrMissingResource indicates a referenced image could not be read.
	ErrMissingResource = errors.New("referenced resource does not exist")

	// ErrStageDirRequired indicates the relocator has nowhere to copy to.
	ErrStageDirRequired = errors.New("resource staging directory is required")
)

// Default element and attribute that reference a resource.
const (
	DefaultTag  = "img"
	DefaultAttr = "src"
)

var _ markup.Handler = (*Relocator)(nil)

// Options configures a Relocator.
type Options struct {
	InputRoot string // root the references are resolved against
	StageDir  string // destination directory for copies
	Tag       string // element name, default "img"
	Attr      string // attribute holding the reference, default "src"
	Logger    *slog.Logger
}

// Resource describes one performed copy.
type Resource struct {
	Source   string // absolute source path
	Dest     string // absolute destination path
	External bool   // source lies outside the input root
}

// Relocator scans markup events for image references and copies every
// referenced file into the staging directory. Document text is never
// rewritten: internal images keep their relative location, external ones
// receive a stable unique name.
type Relocator struct {
	root      string
	stageDir  string
	tag       string
	attr      string
	logger    *slog.Logger
	resources []Resource
}

// New creates a Relocator.
func New(opts Options) (*Relocator, error) {
	if opts.StageDir == "" {
		return nil, ErrStageDirRequired
	}
	root, err := filepath.Abs(opts.InputRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving input root: %w", err)
	}
	stageDir, err := filepath.Abs(opts.StageDir)
	if err != nil {
		return nil, fmt.Errorf("resolving stage directory: %w", err)
	}

	r := &Relocator{
		root:     root,
		stageDir: stageDir,
		tag:      opts.Tag,
		attr:     opts.Attr,
		logger:   opts.Logger,
	}
	if r.tag == "" {
		r.tag = DefaultTag
	}
	if r.attr == "" {
		r.attr = DefaultAttr
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r, nil
}

// OnStart ignores start tags.
func (r *Relocator) OnStart(string, []markup.Attr) error { return nil }

// OnText ignores text.
func (r *Relocator) OnText(string) error { return nil }

// OnEnd ignores end tags.
func (r *Relocator) OnEnd(string) error { return nil }

// OnSelfClosing copies the resource referenced by a self-closing image tag.
func (r *Relocator) OnSelfClosing(name string, attrs []markup.Attr) error {
	if !strings.EqualFold(name, r.tag) {
		return nil
	}
	ref, ok := markup.Lookup(attrs, r.attr)
	if !ok || strings.TrimSpace(ref) == "" {
		r.logger.Debug("image without reference", "tag", name)
		return nil
	}
	if pipeline.IsRemoteReference(ref) {
		r.logger.Debug("skipping remote reference", "ref", ref)
		return nil
	}
	return r.relocate(ref)
}

// Resources returns the copies performed so far, in event order.
func (r *Relocator) Resources() []Resource {
	out := make([]Resource, len(r.resources))
	copy(out, r.resources)
	return out
}

func (r *Relocator) relocate(ref string) error {
	path, ok := pipeline.LocalReferencePath(ref)
	if !ok {
		r.logger.Debug("skipping non-file reference", "ref", ref)
		return nil
	}
	src := pipeline.ResolveReference(r.root, path)
	dst, external := r.destination(src)

	r.logger.Debug("copying resource", "ref", ref, "source", src, "dest", dst, "external", external)
	if err := fileutil.CopyFile(src, dst); err != nil {
		if errors.Is(err, fileutil.ErrCopySource) {
			return fmt.Errorf("%w: %s: %w", ErrMissingResource, src, err)
		}
		return fmt.Errorf("copying %s: %w", src, err)
	}

	r.resources = append(r.resources, Resource{Source: src, Dest: dst, External: external})
	return nil
}

// destination mirrors internal sources under the stage directory. External
// sources are named after a name-based UUID of their path, so the same
// source always lands on the same file.
func (r *Relocator) destination(src string) (string, bool) {
	if pipeline.IsPathUnderDir(src, r.root) {
		rel, err := filepath.Rel(r.root, src)
		if err == nil {
			return filepath.Join(r.stageDir, rel), false
		}
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(src)))
	return filepath.Join(r.stageDir, id.String()+filepath.Ext(src)), true
}
