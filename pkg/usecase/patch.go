package usecase

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/depatch/pkg/domain/interfaces"
	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/depatch/pkg/infra/report"
	"github.com/m-mizutani/goerr/v2"
)

// Patcher builds [patch] sections from Cargo.lock and appends them to
// Cargo.toml
type Patcher struct {
	store    interfaces.ManifestStore
	reporter interfaces.Reporter
	dryRun   bool
	out      io.Writer
}

var _ interfaces.PatchUseCase = (*Patcher)(nil)

// Option is a functional option for Patcher
type Option func(*Patcher)

// WithReporter sets the reporter for progress messages
func WithReporter(r interfaces.Reporter) Option {
	return func(p *Patcher) {
		p.reporter = r
	}
}

// WithDryRun writes the rendered patch to out instead of the manifest
func WithDryRun(out io.Writer) Option {
	return func(p *Patcher) {
		p.dryRun = true
		p.out = out
	}
}

// NewPatcher creates a Patcher working on store
func NewPatcher(store interfaces.ManifestStore, opts ...Option) *Patcher {
	p := &Patcher{
		store:    store,
		reporter: report.Discard,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Patch dispatches req to the assembler of its kind
func (uc *Patcher) Patch(ctx context.Context, req *model.PatchRequest) (*model.PatchTable, error) {
	switch spec := req.Spec.(type) {
	case model.GitPatch:
		return uc.PatchGit(ctx, req.Name, spec)
	case model.RegistryPatch:
		return uc.PatchRegistry(ctx, req.Name, spec)
	case model.PathPatch:
		return uc.PatchPath(ctx, req.Name, spec)
	default:
		return nil, goerr.New("unsupported patch request",
			goerr.V("name", req.Name),
			goerr.V("spec", spec),
			goerr.T(types.ErrTagInvalidRequest))
	}
}

// BuildSkeleton looks up realName in Cargo.lock and returns an empty patch
// table keyed by the package's origin group. name is the dependency key used
// in the manifest, which differs from realName for renamed dependencies.
func (uc *Patcher) BuildSkeleton(ctx context.Context, name, realName string) (*model.PatchTable, error) {
	lock, err := uc.store.ReadLockfile(ctx)
	if err != nil {
		return nil, err
	}

	pkg, ok := lock.Find(realName)
	if !ok {
		return nil, goerr.New("the package is not found in the Cargo.lock file",
			goerr.V("package", realName),
			goerr.T(types.ErrTagPackageNotFound))
	}

	origin, err := pkg.Origin()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to classify package source", goerr.V("package", realName))
	}

	manifest, err := uc.store.ReadManifest(ctx)
	if err != nil {
		return nil, err
	}

	if manifest.HasPatch(name, origin) {
		return nil, goerr.New("the patch for the package already exists",
			goerr.V("package", name),
			goerr.V("origin", origin.String()),
			goerr.T(types.ErrTagAlreadyPatched))
	}

	switch o := origin.(type) {
	case model.GitOrigin:
		return model.NewPatchTable(o.URL), nil
	case model.RegistryOrigin:
		return model.NewPatchTable(o.RegistryID), nil
	case model.PathOrigin:
		return nil, goerr.New("the package is a path dependency, which can't be patched",
			goerr.V("package", realName),
			goerr.T(types.ErrTagPathNotPatchable))
	default:
		return nil, goerr.New("unsupported package origin",
			goerr.V("package", realName),
			goerr.V("origin", o),
			goerr.T(types.ErrTagUnsupportedOrigin))
	}
}

// PatchGit redirects the dependency declared as name to a GitHub repository
func (uc *Patcher) PatchGit(ctx context.Context, name string, patch model.GitPatch) (*model.PatchTable, error) {
	entry, err := patch.Entry()
	if err != nil {
		return nil, err
	}
	return uc.assemble(ctx, name, patch.Rename(), entry)
}

// PatchRegistry redirects the dependency declared as name to another
// crates.io version
func (uc *Patcher) PatchRegistry(ctx context.Context, name string, patch model.RegistryPatch) (*model.PatchTable, error) {
	entry, err := patch.Entry()
	if err != nil {
		return nil, err
	}
	return uc.assemble(ctx, name, patch.Rename(), entry)
}

// PatchPath redirects the dependency declared as name to a local directory
func (uc *Patcher) PatchPath(ctx context.Context, name string, patch model.PathPatch) (*model.PatchTable, error) {
	entry, err := patch.Entry()
	if err != nil {
		return nil, err
	}
	return uc.assemble(ctx, name, patch.Rename(), entry)
}

func (uc *Patcher) assemble(ctx context.Context, name, rename string, entry *model.PatchEntry) (*model.PatchTable, error) {
	realName := name
	if rename != "" {
		realName = rename
	}

	table, err := uc.BuildSkeleton(ctx, name, realName)
	if err != nil {
		return nil, err
	}
	table.Set(name, entry)

	fragment, err := table.Render()
	if err != nil {
		return nil, err
	}

	if uc.dryRun {
		uc.reporter.Info("Dry run, Cargo.toml is not modified", "package", name, "group", table.GroupKey)
		if _, err := uc.out.Write(fragment); err != nil {
			return nil, goerr.Wrap(err, "failed to write patch", goerr.T(types.ErrTagIO))
		}
		return table, nil
	}

	if err := uc.store.AppendPatch(ctx, fragment); err != nil {
		return nil, err
	}

	uc.reporter.Info("Patch added", "package", name, "group", table.GroupKey)
	return table, nil
}
