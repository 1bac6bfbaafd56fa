// Package checkpoint persists snapshots of agent parameters to disk.
//
// A checkpoint is an opaque mapping from parameter names to tensors,
// saved under a file name that ties the snapshot to a model name, a
// source revision, and an episode number:
//
//	<dir>/<name>_<rev7>_ep_<episode>.bin
//
// The revision is supplied explicitly by the caller so that the
// persistence routine itself depends on no ambient process state; the
// GitRevision function recovers the revision of an enclosing git
// working tree for callers that want checkpoints tied to their source
// snapshot.
//
// Saving the same (name, revision, episode) triple twice overwrites
// the earlier checkpoint. Writes are not atomic: a crash mid-write
// leaves a partial file behind.
package checkpoint

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// DefaultDir is the directory checkpoints are saved under when no
// directory is given
const DefaultDir string = "save"

// revisionChars is the number of revision characters kept in filenames
const revisionChars int = 7

// Params is an opaque mapping from parameter names to parameter data
type Params map[string]*tensor.Dense

// Save writes params to a checkpoint file under dir, creating dir if
// it does not exist, and returns the path written to. The path is
// composed of the model name, the first seven characters of revision,
// and the episode number. An existing checkpoint with the same name,
// revision, and episode number is overwritten.
func Save(dir, name, revision string, episode int,
	params Params) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "save: could not create checkpoint "+
			"directory %v", dir)
	}

	path := filepath.Join(dir, Filename(name, revision, episode))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "save: could not create checkpoint "+
			"file %v", path)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(params); err != nil {
		return "", errors.Wrapf(err, "save: could not encode parameters")
	}

	log.Printf("saved model parameters to %v", path)
	return path, nil
}

// Load reads a checkpoint file previously written by Save
func Load(path string) (Params, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load: could not open checkpoint "+
			"file %v", path)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var params Params
	if err := dec.Decode(&params); err != nil {
		return nil, errors.Wrapf(err, "load: could not decode parameters")
	}

	return params, nil
}

// Filename returns the checkpoint file name for a model name, source
// revision, and episode number. Revisions longer than seven characters
// are truncated.
func Filename(name, revision string, episode int) string {
	if len(revision) > revisionChars {
		revision = revision[:revisionChars]
	}
	return fmt.Sprintf("%s_%s_ep_%d.bin", name, revision, episode)
}

// Revision resolves the revision to tag checkpoints with. A non-empty
// explicit revision is returned unchanged; otherwise the revision of
// the git repository enclosing the working directory is used. There is
// no fallback: when no explicit revision is given and no repository is
// discoverable, Revision fails.
func Revision(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return GitRevision(".")
}

// GitRevision returns the commit hash at HEAD of the git repository
// enclosing dir, searching parent directories. An error is returned
// when no repository is found.
func GitRevision(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "gitRevision: bad directory %v", dir)
	}

	for {
		gitDir := filepath.Join(abs, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return headRevision(gitDir)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", errors.Errorf("gitRevision: no git repository found "+
				"enclosing %v", dir)
		}
		abs = parent
	}
}

// headRevision resolves the commit hash that HEAD points at
func headRevision(gitDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return "", errors.Wrap(err, "headRevision: could not read HEAD")
	}

	head := strings.TrimSpace(string(data))
	if !strings.HasPrefix(head, "ref: ") {
		// Detached HEAD holds the hash directly
		return head, nil
	}
	ref := strings.TrimPrefix(head, "ref: ")

	refData, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref)))
	if err == nil {
		return strings.TrimSpace(string(refData)), nil
	}

	// The ref may only exist in packed-refs
	packed, err := os.ReadFile(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return "", errors.Wrapf(err, "headRevision: could not resolve ref %v",
			ref)
	}
	for _, line := range strings.Split(string(packed), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == ref {
			return fields[0], nil
		}
	}

	return "", errors.Errorf("headRevision: ref %v not found", ref)
}
