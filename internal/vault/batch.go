package vault

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ryotapoi/linkconv/internal/core"
	"github.com/ryotapoi/linkconv/internal/logger"
)

// Job computes the link edits for one document.
type Job struct {
	Name string
	Plan func(text, source string, files core.FileLookup) []core.Edit
}

// ConvertJob rewrites links into notation to.
func ConvertJob(to core.Notation, opts core.Options) Job {
	return Job{
		Name: "convert-to-" + to.String(),
		Plan: func(text, source string, files core.FileLookup) []core.Edit {
			return core.PlanConversion(text, source, to, files, opts)
		},
	}
}

// ReformatJob rewrites link paths in the style of opts.Format.
func ReformatJob(opts core.Options) Job {
	return Job{
		Name: "reformat-" + opts.Format.String(),
		Plan: func(text, source string, files core.FileLookup) []core.Edit {
			return core.PlanReformat(text, source, files, opts)
		},
	}
}

// RunOptions controls a batch run.
type RunOptions struct {
	DryRun     bool
	Diff       bool // attach a unified diff to each changed file
	SkipTagged bool // skip documents carrying a Config.SkipFrontmatterKeys key
}

// Change is one rewritten link.
type Change struct {
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// FileResult describes what happened to one document.
type FileResult struct {
	Path    string   `json:"path"`
	Changes []Change `json:"changes,omitempty"`
	Skipped string   `json:"skipped,omitempty"`
	Diff    string   `json:"diff,omitempty"`
}

// Report summarizes a batch run.
type Report struct {
	RunID    string        `json:"run_id"`
	Job      string        `json:"job"`
	Scope    string        `json:"scope"`
	DryRun   bool          `json:"dry_run"`
	Files    []FileResult  `json:"files"`
	Changed  int           `json:"changed"`
	Skipped  int           `json:"skipped"`
	Links    int           `json:"links"`
	Duration time.Duration `json:"-"`
}

// rewriteBackup holds original file content for rollback on failure.
type rewriteBackup struct {
	path    string
	content []byte
	perm    os.FileMode
	mtime   time.Time
}

// restoreBackups restores files to their original content and mtime (best-effort).
func (v *Vault) restoreBackups(backups []rewriteBackup) {
	for i := len(backups) - 1; i >= 0; i-- {
		fb := backups[i]
		full := v.abs(fb.path)
		if err := writeFilePreservePerm(full, fb.content, fb.perm); err != nil {
			continue
		}
		_ = os.Chtimes(full, fb.mtime, fb.mtime)
	}
}

// Run applies job to every document in scope, one at a time in path order.
// If a write fails, documents already written by this run are restored and
// the error is returned. Cancellation stops the run between documents
// without undoing completed writes.
func (v *Vault) Run(ctx context.Context, job Job, scope Scope, opts RunOptions, log *logger.Logger) (*Report, error) {
	if log == nil {
		log = logger.Discard()
	}
	docs, err := v.Documents(scope)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rep := &Report{
		RunID:  uuid.NewString(),
		Job:    job.Name,
		Scope:  scope.String(),
		DryRun: opts.DryRun,
		Files:  []FileResult{},
	}
	log.RunStarted(rep.RunID, job.Name, rep.Scope, len(docs))

	var written []rewriteBackup
	fail := func(doc string, err error) (*Report, error) {
		log.FileError(doc, err)
		v.restoreBackups(written)
		rep.Duration = time.Since(start)
		log.RunCompleted(rep.RunID, rep.Changed, rep.Skipped, 1, rep.Duration)
		return rep, err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			return rep, err
		}

		info, err := os.Stat(v.abs(doc))
		if err != nil {
			return fail(doc, errors.Wrapf(err, "stat %s", doc))
		}
		text, err := v.ReadText(doc)
		if err != nil {
			return fail(doc, err)
		}

		if opts.SkipTagged {
			if key, ok := HasTag(text, v.Config.SkipFrontmatterKeys); ok {
				reason := "frontmatter " + key
				log.FileSkipped(doc, reason)
				rep.Files = append(rep.Files, FileResult{Path: doc, Skipped: reason})
				rep.Skipped++
				continue
			}
		}

		edits := job.Plan(text, doc, v)
		if len(edits) == 0 {
			continue
		}
		out := core.Apply(text, edits)
		if out == text {
			continue
		}

		res := FileResult{Path: doc, Changes: make([]Change, 0, len(edits))}
		for _, e := range edits {
			res.Changes = append(res.Changes, Change{
				Kind:   e.Kind.String(),
				Offset: e.Start,
				Before: e.Raw,
				After:  e.New,
			})
		}
		if opts.Diff {
			res.Diff = UnifiedDiff(doc, text, out)
		}

		if !opts.DryRun {
			if err := v.WriteText(doc, out); err != nil {
				return fail(doc, err)
			}
			written = append(written, rewriteBackup{
				path:    doc,
				content: []byte(text),
				perm:    info.Mode().Perm(),
				mtime:   info.ModTime(),
			})
		}
		log.FileRewritten(doc, len(edits), opts.DryRun)
		rep.Files = append(rep.Files, res)
		rep.Changed++
		rep.Links += len(edits)
	}

	rep.Duration = time.Since(start)
	log.RunCompleted(rep.RunID, rep.Changed, rep.Skipped, 0, rep.Duration)
	return rep, nil
}
