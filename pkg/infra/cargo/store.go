package cargo

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/depatch/pkg/domain/interfaces"
	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/depatch/pkg/infra/report"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

const (
	ManifestFileName = "Cargo.toml"
	LockfileFileName = "Cargo.lock"
)

// Store is a file-backed ManifestStore for one Cargo project directory
type Store struct {
	dir       string
	generator interfaces.LockfileGenerator
	reporter  interfaces.Reporter
}

var _ interfaces.ManifestStore = (*Store)(nil)

// Option is a functional option for Store
type Option func(*Store)

// WithGenerator replaces the command used to create a missing Cargo.lock
func WithGenerator(g interfaces.LockfileGenerator) Option {
	return func(s *Store) {
		s.generator = g
	}
}

// WithReporter sets the reporter used for warnings
func WithReporter(r interfaces.Reporter) Option {
	return func(s *Store) {
		s.reporter = r
	}
}

// NewStore creates a Store for the Cargo project in dir
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:       dir,
		generator: NewCommandGenerator(),
		reporter:  report.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ManifestPath returns the path of Cargo.toml
func (s *Store) ManifestPath() string {
	return filepath.Join(s.dir, ManifestFileName)
}

// LockfilePath returns the path of Cargo.lock
func (s *Store) LockfilePath() string {
	return filepath.Join(s.dir, LockfileFileName)
}

// ReadLockfile reads Cargo.lock. When the file is absent, `cargo
// generate-lockfile` is run in the project directory first.
func (s *Store) ReadLockfile(ctx context.Context) (*model.Lockfile, error) {
	if err := s.requireManifest(); err != nil {
		return nil, err
	}

	path := s.LockfilePath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.reporter.Warn("It will create a new Cargo.lock file", "dir", s.dir)
		if err := s.generator.GenerateLockfile(ctx, s.dir); err != nil {
			return nil, goerr.Wrap(err, "failed to generate Cargo.lock",
				goerr.V("dir", s.dir),
				goerr.T(types.ErrTagNotFound))
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is the project lockfile
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "Cargo.lock is not found",
				goerr.V("path", path),
				goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to read Cargo.lock",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO))
	}

	var lock model.Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, goerr.Wrap(err, "failed to parse Cargo.lock",
			goerr.V("path", path),
			goerr.T(types.ErrTagParse))
	}

	return &lock, nil
}

// ReadManifest reads Cargo.toml
func (s *Store) ReadManifest(ctx context.Context) (*model.Manifest, error) {
	data, err := s.readManifest()
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse Cargo.toml",
			goerr.V("path", s.ManifestPath()),
			goerr.T(types.ErrTagParse))
	}

	return model.NewManifest(doc), nil
}

// AppendPatch appends fragment to Cargo.toml, separated from the existing
// content by a blank line. Existing content is never rewritten.
func (s *Store) AppendPatch(ctx context.Context, fragment []byte) error {
	current, err := s.readManifest()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if len(current) > 0 && !bytes.HasSuffix(current, []byte("\n")) {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	buf.Write(fragment)

	path := s.ManifestPath()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0) //nolint:gosec // path is the project manifest
	if err != nil {
		return goerr.Wrap(err, "failed to open Cargo.toml",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO))
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to append patch to Cargo.toml",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close Cargo.toml",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO))
	}

	return nil
}

func (s *Store) requireManifest() error {
	path := s.ManifestPath()
	if _, err := os.Stat(path); err != nil {
		return goerr.Wrap(err, "the Cargo.toml file is not found",
			goerr.V("dir", s.dir),
			goerr.T(types.ErrTagNotFound))
	}
	return nil
}

func (s *Store) readManifest() ([]byte, error) {
	path := s.ManifestPath()
	data, err := os.ReadFile(path) //nolint:gosec // path is the project manifest
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "the Cargo.toml file is not found",
				goerr.V("dir", s.dir),
				goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to read Cargo.toml",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO))
	}
	return data, nil
}
