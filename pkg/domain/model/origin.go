package model

import (
	"strings"

	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	sourcePrefixGit      = "git+"
	sourcePrefixRegistry = "registry+"
	sourcePrefixSparse   = "sparse+"

	// CratesIO is the patch group key of the default public registry
	CratesIO = "crates-io"
)

var cratesIOIndexes = []string{
	"https://github.com/rust-lang/crates.io-index",
	"https://index.crates.io/",
}

// Origin is where a locked package was resolved from. The set of variants is
// closed: GitOrigin, PathOrigin and RegistryOrigin.
type Origin interface {
	// GroupKey returns the key under [patch] that overrides this origin.
	// PathOrigin has no group key.
	GroupKey() string
	String() string

	origin()
}

// GitOrigin is a dependency resolved from a git repository
type GitOrigin struct {
	URL string
}

// PathOrigin is a dependency resolved from the local filesystem
type PathOrigin struct{}

// RegistryOrigin is a dependency resolved from a package registry
type RegistryOrigin struct {
	RegistryID string
}

func (GitOrigin) origin()      {}
func (PathOrigin) origin()     {}
func (RegistryOrigin) origin() {}

func (o GitOrigin) GroupKey() string      { return o.URL }
func (PathOrigin) GroupKey() string       { return "" }
func (o RegistryOrigin) GroupKey() string { return o.RegistryID }

func (o GitOrigin) String() string      { return "git(" + o.URL + ")" }
func (PathOrigin) String() string       { return "path" }
func (o RegistryOrigin) String() string { return "registry(" + o.RegistryID + ")" }

// ParseOrigin classifies the source string of a Cargo.lock package.
//
// An empty source is a path dependency. A git source yields the repository
// URL without its "#<commit>" fragment and "?<query>" parameters. Registry
// sources are accepted only for the crates.io index.
func ParseOrigin(source string) (Origin, error) {
	switch {
	case source == "":
		return PathOrigin{}, nil

	case strings.HasPrefix(source, sourcePrefixGit):
		url := strings.TrimPrefix(source, sourcePrefixGit)
		url, _, _ = strings.Cut(url, "#")
		url, _, _ = strings.Cut(url, "?")
		return GitOrigin{URL: url}, nil

	case strings.HasPrefix(source, sourcePrefixRegistry):
		return parseRegistry(source, strings.TrimPrefix(source, sourcePrefixRegistry))

	case strings.HasPrefix(source, sourcePrefixSparse):
		return parseRegistry(source, strings.TrimPrefix(source, sourcePrefixSparse))

	default:
		return nil, goerr.New("unsupported dependency source",
			goerr.V("source", source),
			goerr.T(types.ErrTagUnsupportedOrigin))
	}
}

func parseRegistry(source, index string) (Origin, error) {
	for _, known := range cratesIOIndexes {
		if strings.TrimSuffix(index, "/") == strings.TrimSuffix(known, "/") {
			return RegistryOrigin{RegistryID: CratesIO}, nil
		}
	}

	return nil, goerr.New("only crates-io registry is supported",
		goerr.V("source", source),
		goerr.V("index", index),
		goerr.T(types.ErrTagUnsupportedRegistry))
}
