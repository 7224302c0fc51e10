package model_test

import (
	"testing"

	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   model.Origin
	}{
		{
			name:   "no source is a path dependency",
			source: "",
			want:   model.PathOrigin{},
		},
		{
			name:   "git source with commit fragment",
			source: "git+https://github.com/rust-lang/log#5f3cb9e144d8e8a6d7d4c9f1a2b3c4d5e6f7a8b9",
			want:   model.GitOrigin{URL: "https://github.com/rust-lang/log"},
		},
		{
			name:   "git source with query and fragment",
			source: "git+https://github.com/rust-lang/log?branch=main#5f3cb9e1",
			want:   model.GitOrigin{URL: "https://github.com/rust-lang/log"},
		},
		{
			name:   "git source with query only",
			source: "git+https://github.com/rust-lang/log?tag=0.4.20",
			want:   model.GitOrigin{URL: "https://github.com/rust-lang/log"},
		},
		{
			name:   "git source without suffix",
			source: "git+ssh://git@github.com/rust-lang/log.git",
			want:   model.GitOrigin{URL: "ssh://git@github.com/rust-lang/log.git"},
		},
		{
			name:   "crates.io git index",
			source: "registry+https://github.com/rust-lang/crates.io-index",
			want:   model.RegistryOrigin{RegistryID: "crates-io"},
		},
		{
			name:   "crates.io sparse index",
			source: "sparse+https://index.crates.io/",
			want:   model.RegistryOrigin{RegistryID: "crates-io"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseOrigin(tt.source)
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestParseOrigin_Unsupported(t *testing.T) {
	t.Run("unknown prefix", func(t *testing.T) {
		_, err := model.ParseOrigin("svn+https://example.com/repo")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagUnsupportedOrigin))
	})

	t.Run("other registry", func(t *testing.T) {
		_, err := model.ParseOrigin("registry+https://my-registry.example.com/index")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagUnsupportedRegistry))
	})

	t.Run("other sparse registry", func(t *testing.T) {
		_, err := model.ParseOrigin("sparse+https://cargo.example.com/api/v1/crates/")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagUnsupportedRegistry))
	})
}

func TestOrigin_GroupKey(t *testing.T) {
	gt.V(t, model.GitOrigin{URL: "https://github.com/a/b"}.GroupKey()).Equal("https://github.com/a/b")
	gt.V(t, model.RegistryOrigin{RegistryID: "crates-io"}.GroupKey()).Equal("crates-io")
	gt.V(t, model.PathOrigin{}.GroupKey()).Equal("")
}

func TestLockfile_Find(t *testing.T) {
	lock := &model.Lockfile{
		Version: 3,
		Packages: []model.LockedPackage{
			{Name: "log", Version: "0.4.20", Source: "registry+https://github.com/rust-lang/crates.io-index"},
			{Name: "log", Version: "0.3.9", Source: "registry+https://github.com/rust-lang/crates.io-index"},
			{Name: "project1", Version: "0.1.0"},
		},
	}

	pkg, ok := lock.Find("log")
	gt.True(t, ok)
	gt.V(t, pkg.Version).Equal("0.4.20")

	pkg, ok = lock.Find("project1")
	gt.True(t, ok)
	origin, err := pkg.Origin()
	gt.NoError(t, err)
	gt.V(t, origin).Equal(model.Origin(model.PathOrigin{}))

	_, ok = lock.Find("serde")
	gt.False(t, ok)
}
