// Package helpmaker compiles a directory of markdown help sources into a
// packaged online-help archive.
//
// # Quick Start
//
//	svc, err := helpmaker.New(helpmaker.WithWorkDir("build/help"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := svc.Build(ctx, "help.zip", "docs/help")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Controls {
//	    fmt.Println(c.Control, c.Path)
//	}
//
// # Build Stages
//
// Every source file goes through three stages, one after the other:
//
//  1. Markdown to an HTML fragment via Goldmark (stage1)
//  2. Control tag extraction: the <meta name="control" content="ID" />
//     element is stripped and recorded as a ControlEntry (stage2)
//  3. Resource relocation: images referenced by <img src> are copied into
//     the staging tree (stage3)
//
// The stage-2 documents and stage-3 resources are then packaged into a zip
// archive, together with a controls.yaml manifest mapping control ids to
// pages.
//
// A file that fails in one stage is logged and skipped; the build goes on
// with the next file. A missing image aborts the whole build with
// ErrMissingResource.
//
// # Jobs
//
// Run dispatches a Job: JobBuild, JobClean (remove archive and working
// directory) or JobRebuild (clean, then build unconditionally).
//
// A Service is not safe for concurrent use. The working directory is
// guarded by a lock file so two processes cannot build into it at once.
package helpmaker
