package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of a patch invocation. Every tag is terminal
// for the current run; ErrTagAlreadyPatched is an expected outcome rather
// than a system error.
var (
	// ErrTagNotFound is for a missing manifest, or a lockfile that is absent and cannot be generated
	ErrTagNotFound = goerr.NewTag("not_found")
	// ErrTagParse is for a malformed manifest or lockfile
	ErrTagParse = goerr.NewTag("parse")
	// ErrTagUnsupportedOrigin is for an unrecognized dependency source marker
	ErrTagUnsupportedOrigin = goerr.NewTag("unsupported_origin")
	// ErrTagUnsupportedRegistry is for a registry source other than crates.io
	ErrTagUnsupportedRegistry = goerr.NewTag("unsupported_registry")
	// ErrTagPackageNotFound is for a package absent from the lockfile
	ErrTagPackageNotFound = goerr.NewTag("package_not_found")
	// ErrTagAlreadyPatched is for a package that already has a patch entry
	ErrTagAlreadyPatched = goerr.NewTag("already_patched")
	// ErrTagPathNotPatchable is for local path dependencies
	ErrTagPathNotPatchable = goerr.NewTag("path_not_patchable")
	// ErrTagFormat is for a malformed repository identifier
	ErrTagFormat = goerr.NewTag("format")
	// ErrTagIO is for write failures
	ErrTagIO = goerr.NewTag("io")
	// ErrTagInvalidRequest is for patch requests missing their kind-specific fields
	ErrTagInvalidRequest = goerr.NewTag("invalid_request")
)
