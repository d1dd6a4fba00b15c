// Package model contains domain models passed between layers.
package model

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Job is one submission file waiting to be scored.
type Job struct {
	SubmissionID string    // leaderboard identifier, unique within a run
	Path         string    // submission CSV on disk
	Digest       string    // content digest used for duplicate detection
	EnqueuedAt   time.Time // when the job entered the queue
}

// SubmissionIDFromPath derives a submission id from a file path by dropping
// the directory and the extension.
func SubmissionIDFromPath(path string) string {
	base := filepath.Base(path)
	if id := strings.TrimSuffix(base, filepath.Ext(base)); id != "" {
		return id
	}
	return base
}

// SubmissionIDs derives one id per path, unique across paths. File names are
// used where they are unambiguous. Colliding files are named by their path
// relative to the deepest directory shared by all paths, first without and
// then with the extension. Anything still colliding, such as the same path
// given twice, gets a "#n" suffix.
func SubmissionIDs(paths []string) []string {
	ids := make([]string, len(paths))
	for i, p := range paths {
		ids[i] = SubmissionIDFromPath(p)
	}
	if len(colliding(ids)) == 0 {
		return ids
	}

	abs := make([]string, len(paths))
	for i, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			abs[i] = a
		} else {
			abs[i] = filepath.Clean(p)
		}
	}
	root := commonDir(abs)
	relative := func(i int) string {
		rel, err := filepath.Rel(root, abs[i])
		if err != nil {
			rel = abs[i]
		}
		return filepath.ToSlash(rel)
	}

	levels := []func(i int) string{
		func(i int) string {
			rel := relative(i)
			if id := strings.TrimSuffix(rel, filepath.Ext(rel)); id != "" && !strings.HasSuffix(id, "/") {
				return id
			}
			return rel
		},
		relative,
	}
	for _, level := range levels {
		for _, i := range colliding(ids) {
			ids[i] = level(i)
		}
	}

	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		seen[id]++
		if n := seen[id]; n > 1 {
			ids[i] = id + "#" + strconv.Itoa(n)
		}
	}
	return ids
}

// colliding returns the indexes of ids that occur more than once.
func colliding(ids []string) []int {
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	var out []int
	for i, id := range ids {
		if counts[id] > 1 {
			out = append(out, i)
		}
	}
	return out
}

// commonDir returns the deepest directory containing every path.
func commonDir(paths []string) string {
	sep := string(os.PathSeparator)
	parts := strings.Split(filepath.Dir(paths[0]), sep)
	for _, p := range paths[1:] {
		other := strings.Split(filepath.Dir(p), sep)
		n := 0
		for n < len(parts) && n < len(other) && parts[n] == other[n] {
			n++
		}
		parts = parts[:n]
	}
	dir := strings.Join(parts, sep)
	if dir == "" {
		return sep
	}
	return dir
}

// NewJob builds a job for the submission id and path.
func NewJob(submissionID, path, digest string) Job {
	return Job{
		SubmissionID: submissionID,
		Path:         path,
		Digest:       digest,
		EnqueuedAt:   time.Now(),
	}
}
