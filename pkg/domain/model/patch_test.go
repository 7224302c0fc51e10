package model_test

import (
	"testing"

	"github.com/m-mizutani/depatch/pkg/domain/model"
	"github.com/m-mizutani/depatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestNewRefSelector(t *testing.T) {
	tests := []struct {
		name    string
		commit  string
		tag     string
		branch  string
		want    model.RefSelector
		wantErr bool
	}{
		{name: "none", want: model.NoRef{}},
		{name: "commit", commit: "abc123", want: model.CommitRef("abc123")},
		{name: "tag", tag: "0.4.20", want: model.TagRef("0.4.20")},
		{name: "branch", branch: "main", want: model.BranchRef("main")},
		{name: "commit and tag", commit: "abc123", tag: "0.4.20", wantErr: true},
		{name: "tag and branch", tag: "0.4.20", branch: "main", wantErr: true},
		{name: "all", commit: "abc123", tag: "0.4.20", branch: "main", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.NewRefSelector(tt.commit, tt.tag, tt.branch)
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagInvalidRequest))
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestGitPatch_RemoteURL(t *testing.T) {
	t.Run("owner and repo", func(t *testing.T) {
		url, err := model.GitPatch{Repository: "rust-lang/log"}.RemoteURL()
		gt.NoError(t, err)
		gt.V(t, url).Equal("https://github.com/rust-lang//log.git")
	})

	for _, repo := range []string{"rust-lang", "a/b/c", "", "/log", "rust-lang/"} {
		t.Run("invalid "+repo, func(t *testing.T) {
			_, err := model.GitPatch{Repository: repo}.RemoteURL()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagFormat))
		})
	}
}

func TestGitPatch_Entry(t *testing.T) {
	tests := []struct {
		name  string
		patch model.GitPatch
		want  model.PatchEntry
	}{
		{
			name:  "minimal",
			patch: model.GitPatch{Repository: "rust-lang/log"},
			want:  model.PatchEntry{Git: "https://github.com/rust-lang//log.git"},
		},
		{
			name: "renamed with version and commit",
			patch: model.GitPatch{
				Repository: "rust-lang/log",
				Package:    "log",
				Version:    "0.4",
				Ref:        model.CommitRef("abc123"),
			},
			want: model.PatchEntry{
				Git:     "https://github.com/rust-lang//log.git",
				Package: "log",
				Version: "0.4",
				Rev:     "abc123",
			},
		},
		{
			name:  "tag",
			patch: model.GitPatch{Repository: "rust-lang/log", Ref: model.TagRef("0.4.20")},
			want:  model.PatchEntry{Git: "https://github.com/rust-lang//log.git", Tag: "0.4.20"},
		},
		{
			name:  "branch",
			patch: model.GitPatch{Repository: "rust-lang/log", Ref: model.BranchRef("main")},
			want:  model.PatchEntry{Git: "https://github.com/rust-lang//log.git", Branch: "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := tt.patch.Entry()
			gt.NoError(t, err)
			gt.V(t, *entry).Equal(tt.want)
		})
	}
}

func TestPatchFields_Request(t *testing.T) {
	t.Run("git", func(t *testing.T) {
		req, err := model.PatchFields{
			Name:    "log",
			Type:    "git",
			GitRepo: "rust-lang/log",
			Branch:  "main",
		}.Request()
		gt.NoError(t, err)
		gt.V(t, req.Name).Equal("log")
		gt.V(t, req.RealName()).Equal("log")
		gt.V(t, req.Spec.Kind()).Equal(model.PatchKindGit)
		gt.V(t, req.Spec).Equal(model.PatchSpec(model.GitPatch{
			Repository: "rust-lang/log",
			Ref:        model.BranchRef("main"),
		}))
	})

	t.Run("renamed registry", func(t *testing.T) {
		req, err := model.PatchFields{
			Name:            "logger",
			Type:            "registry",
			RealPackageName: "log",
			Version:         "1.2.3",
		}.Request()
		gt.NoError(t, err)
		gt.V(t, req.RealName()).Equal("log")
		gt.V(t, req.Spec).Equal(model.PatchSpec(model.RegistryPatch{Package: "log", Version: "1.2.3"}))
	})

	t.Run("path", func(t *testing.T) {
		req, err := model.PatchFields{Name: "log", Type: "path", Path: "../local/log"}.Request()
		gt.NoError(t, err)
		gt.V(t, req.Spec).Equal(model.PatchSpec(model.PathPatch{Path: "../local/log"}))
	})

	invalid := []struct {
		name   string
		fields model.PatchFields
	}{
		{"missing name", model.PatchFields{Type: "registry", Version: "1.0.0"}},
		{"git without repo", model.PatchFields{Name: "log", Type: "git"}},
		{"git with two refs", model.PatchFields{Name: "log", Type: "git", GitRepo: "a/b", Commit: "abc", Tag: "v1"}},
		{"registry without version", model.PatchFields{Name: "log", Type: "registry"}},
		{"path without path", model.PatchFields{Name: "log", Type: "path"}},
		{"unknown type", model.PatchFields{Name: "log", Type: "svn"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fields.Request()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, types.ErrTagInvalidRequest))
		})
	}
}
