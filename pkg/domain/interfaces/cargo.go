package interfaces

import (
	"context"

	"github.com/m-mizutani/depatch/pkg/domain/model"
)

// ManifestStore gives read/append access to a Cargo project's manifest and
// read access to its lockfile
type ManifestStore interface {
	// ReadLockfile reads Cargo.lock, generating it first when it is absent
	ReadLockfile(ctx context.Context) (*model.Lockfile, error)

	// ReadManifest reads Cargo.toml
	ReadManifest(ctx context.Context) (*model.Manifest, error)

	// AppendPatch appends a rendered patch fragment to the end of Cargo.toml
	AppendPatch(ctx context.Context, fragment []byte) error
}

// LockfileGenerator creates Cargo.lock for a project directory
type LockfileGenerator interface {
	GenerateLockfile(ctx context.Context, dir string) error
}

// Reporter receives user-facing diagnostics. args are slog-style key/value
// pairs.
type Reporter interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
