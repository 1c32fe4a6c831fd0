// Package gitmeta discovers title-header metadata (version, date) from the
// git repository enclosing a README, when one exists.
package gitmeta

import (
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/schmitthub/mandown/internal/logger"
)

// Info holds page metadata derived from a repository.
type Info struct {
	// Version is the most recent tag name, or empty when untagged.
	Version string
	// Date is the HEAD commit time, or the current time without a repo.
	Date time.Time
}

// Discover inspects the repository containing path. Absence of a repo, of
// commits, or of tags is not an error; the zero pieces fall back to
// sensible defaults. Nothing here may fail a run.
func Discover(path string) Info {
	info := Info{Date: time.Now()}

	// Repo detection wants a directory; accept a README path directly.
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		path = filepath.Dir(path)
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		logger.Debug().Str("path", path).Msg("no git repository found")
		return info
	}

	if head, err := repo.Head(); err == nil {
		if commit, err := repo.CommitObject(head.Hash()); err == nil {
			info.Date = commit.Committer.When
		}
	}

	info.Version = latestTag(repo)
	return info
}

// latestTag returns the name of the tag whose commit is newest.
// Annotated tags are resolved through their tag object.
func latestTag(repo *gogit.Repository) string {
	iter, err := repo.Tags()
	if err != nil {
		return ""
	}

	var (
		best     string
		bestTime time.Time
	)

	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		when, ok := tagTime(repo, ref)
		if !ok {
			return nil
		}
		if best == "" || when.After(bestTime) {
			best = ref.Name().Short()
			bestTime = when
		}
		return nil
	})

	return best
}

func tagTime(repo *gogit.Repository, ref *plumbing.Reference) (time.Time, bool) {
	// Annotated tag: the hash points at a tag object
	if tag, err := repo.TagObject(ref.Hash()); err == nil {
		return tag.Tagger.When, true
	}
	// Lightweight tag: the hash points directly at a commit
	if commit, err := repo.CommitObject(ref.Hash()); err == nil {
		return commit.Committer.When, true
	}
	return time.Time{}, false
}
