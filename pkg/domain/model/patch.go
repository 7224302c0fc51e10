package model

import (
	"strings"

	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// PatchKind selects where a patched dependency is redirected to
type PatchKind string

const (
	PatchKindGit      PatchKind = "git"
	PatchKindRegistry PatchKind = "registry"
	PatchKindPath     PatchKind = "path"
)

// RefSelector picks the revision of a git patch. Variants: NoRef, CommitRef,
// TagRef and BranchRef.
type RefSelector interface {
	apply(e *PatchEntry)
}

// NoRef leaves the revision to the repository's default branch
type NoRef struct{}

// CommitRef pins a git patch to a commit hash
type CommitRef string

// TagRef pins a git patch to a tag
type TagRef string

// BranchRef follows a branch
type BranchRef string

func (NoRef) apply(*PatchEntry)         {}
func (r CommitRef) apply(e *PatchEntry) { e.Rev = string(r) }
func (r TagRef) apply(e *PatchEntry)    { e.Tag = string(r) }
func (r BranchRef) apply(e *PatchEntry) { e.Branch = string(r) }

// NewRefSelector builds a selector from optional commit, tag and branch
// values. At most one of them may be set.
func NewRefSelector(commit, tag, branch string) (RefSelector, error) {
	var set []string
	if commit != "" {
		set = append(set, "commit")
	}
	if tag != "" {
		set = append(set, "tag")
	}
	if branch != "" {
		set = append(set, "branch")
	}
	if len(set) > 1 {
		return nil, goerr.New("commit, branch and tag can't be used with each other",
			goerr.V("given", set),
			goerr.T(types.ErrTagInvalidRequest))
	}

	switch {
	case commit != "":
		return CommitRef(commit), nil
	case tag != "":
		return TagRef(tag), nil
	case branch != "":
		return BranchRef(branch), nil
	default:
		return NoRef{}, nil
	}
}

// PatchSpec is the kind-specific part of a patch request. Variants: GitPatch,
// RegistryPatch and PathPatch.
type PatchSpec interface {
	Kind() PatchKind
	// Rename returns the real package name when the dependency is renamed in
	// the manifest, or an empty string
	Rename() string

	patchSpec()
}

// GitPatch redirects a dependency to a GitHub repository
type GitPatch struct {
	// Repository is in owner/repo form
	Repository string
	Package    string
	Version    string
	Ref        RefSelector
}

// RegistryPatch redirects a dependency to another version on crates.io
type RegistryPatch struct {
	Package string
	Version string
}

// PathPatch redirects a dependency to a local directory
type PathPatch struct {
	Package string
	Path    string
}

func (GitPatch) patchSpec()      {}
func (RegistryPatch) patchSpec() {}
func (PathPatch) patchSpec()     {}

func (GitPatch) Kind() PatchKind      { return PatchKindGit }
func (RegistryPatch) Kind() PatchKind { return PatchKindRegistry }
func (PathPatch) Kind() PatchKind     { return PatchKindPath }

func (p GitPatch) Rename() string      { return p.Package }
func (p RegistryPatch) Rename() string { return p.Package }
func (p PathPatch) Rename() string     { return p.Package }

// OwnerRepo splits Repository into its owner and repository name
func (p GitPatch) OwnerRepo() (string, string, error) {
	names := strings.Split(p.Repository, "/")
	if len(names) != 2 || names[0] == "" || names[1] == "" {
		return "", "", goerr.New("git repository must be in owner/repo form",
			goerr.V("repository", p.Repository),
			goerr.T(types.ErrTagFormat))
	}
	return names[0], names[1], nil
}

// RemoteURL returns the GitHub URL written into the patch. The doubled slash
// before the repository name keeps the patch source distinct from the
// source being patched, which cargo requires even when both name the
// same repository.
func (p GitPatch) RemoteURL() (string, error) {
	owner, repo, err := p.OwnerRepo()
	if err != nil {
		return "", err
	}
	return "https://github.com/" + owner + "//" + repo + ".git", nil
}

// PatchRequest asks to patch the dependency declared as Name in the manifest
type PatchRequest struct {
	Name string
	Spec PatchSpec
}

// RealName is the package name to look up in Cargo.lock
func (r *PatchRequest) RealName() string {
	if rename := r.Spec.Rename(); rename != "" {
		return rename
	}
	return r.Name
}

// PatchFields is the flat form of a patch request as given on the command
// line or in a plan file
type PatchFields struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	RealPackageName string `yaml:"real_package_name,omitempty"`
	Version         string `yaml:"version,omitempty"`
	GitRepo         string `yaml:"git_repo,omitempty"`
	Commit          string `yaml:"commit,omitempty"`
	Tag             string `yaml:"tag,omitempty"`
	Branch          string `yaml:"branch,omitempty"`
	Path            string `yaml:"path,omitempty"`
}

// Request validates the fields and builds a PatchRequest
func (f PatchFields) Request() (*PatchRequest, error) {
	if f.Name == "" {
		return nil, goerr.New("package name is required", goerr.T(types.ErrTagInvalidRequest))
	}

	req := &PatchRequest{Name: f.Name}

	switch PatchKind(f.Type) {
	case PatchKindGit:
		if f.GitRepo == "" {
			return nil, goerr.New("the git repo is required for git patch",
				goerr.V("name", f.Name),
				goerr.T(types.ErrTagInvalidRequest))
		}
		ref, err := NewRefSelector(f.Commit, f.Tag, f.Branch)
		if err != nil {
			return nil, err
		}
		req.Spec = GitPatch{
			Repository: f.GitRepo,
			Package:    f.RealPackageName,
			Version:    f.Version,
			Ref:        ref,
		}

	case PatchKindRegistry:
		if f.Version == "" {
			return nil, goerr.New("the version is required for registry patch",
				goerr.V("name", f.Name),
				goerr.T(types.ErrTagInvalidRequest))
		}
		req.Spec = RegistryPatch{
			Package: f.RealPackageName,
			Version: f.Version,
		}

	case PatchKindPath:
		if f.Path == "" {
			return nil, goerr.New("the path is required for path patch",
				goerr.V("name", f.Name),
				goerr.T(types.ErrTagInvalidRequest))
		}
		req.Spec = PathPatch{
			Package: f.RealPackageName,
			Path:    f.Path,
		}

	default:
		return nil, goerr.New("unsupported patch type",
			goerr.V("type", f.Type),
			goerr.T(types.ErrTagInvalidRequest))
	}

	return req, nil
}

// Entry builds the [patch] entry for the git repository
func (p GitPatch) Entry() (*PatchEntry, error) {
	url, err := p.RemoteURL()
	if err != nil {
		return nil, err
	}

	entry := &PatchEntry{
		Git:     url,
		Package: p.Package,
		Version: p.Version,
	}

	switch ref := p.Ref.(type) {
	case nil, NoRef:
	case CommitRef, TagRef, BranchRef:
		ref.apply(entry)
	default:
		return nil, goerr.New("unknown git ref selector", goerr.V("ref", ref), goerr.T(types.ErrTagInvalidRequest))
	}

	return entry, nil
}

// Entry builds the [patch] entry for the registry version
func (p RegistryPatch) Entry() (*PatchEntry, error) {
	if p.Version == "" {
		return nil, goerr.New("the version is required for registry patch", goerr.T(types.ErrTagInvalidRequest))
	}
	return &PatchEntry{
		Package: p.Package,
		Version: p.Version,
	}, nil
}

// Entry builds the [patch] entry for the local path
func (p PathPatch) Entry() (*PatchEntry, error) {
	if p.Path == "" {
		return nil, goerr.New("the path is required for path patch", goerr.T(types.ErrTagInvalidRequest))
	}
	return &PatchEntry{
		Package: p.Package,
		Path:    p.Path,
	}, nil
}
