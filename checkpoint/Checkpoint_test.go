package checkpoint_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"gorgonia.org/tensor"

	"github.com/gorlkit/gorl/checkpoint"
)

func testParams() checkpoint.Params {
	return checkpoint.Params{
		"mean": tensor.New(tensor.WithShape(1, 2),
			tensor.WithBacking([]float64{0.5, -1.5})),
		"critic": tensor.New(tensor.WithShape(1, 2),
			tensor.WithBacking([]float64{3.0, 4.0})),
	}
}

func TestSaveCreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "save")

	path, err := checkpoint.Save(dir, "model", "0123456789abcdef", 3,
		testParams())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("save directory was not created: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("could not read save directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one checkpoint file, got %v", len(entries))
	}

	pattern := regexp.MustCompile(`^model_[0-9a-f]{7}_ep_3\.bin$`)
	if !pattern.MatchString(entries[0].Name()) {
		t.Errorf("checkpoint name %q does not match the naming pattern",
			entries[0].Name())
	}
	if filepath.Base(path) != entries[0].Name() {
		t.Errorf("returned path %v does not name the written file", path)
	}
}

func TestSaveTruncatesRevision(t *testing.T) {
	dir := t.TempDir()

	path, err := checkpoint.Save(dir, "model", "0123456789abcdef", 0,
		testParams())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	want := "model_0123456_ep_0.bin"
	if filepath.Base(path) != want {
		t.Errorf("got path %v, want file name %v", path, want)
	}
}

// Saving the same (name, revision, episode) triple twice overwrites
// the earlier checkpoint rather than erroring.
func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()

	first := checkpoint.Params{
		"w": tensor.New(tensor.WithShape(1, 1),
			tensor.WithBacking([]float64{1.0})),
	}
	second := checkpoint.Params{
		"w": tensor.New(tensor.WithShape(1, 1),
			tensor.WithBacking([]float64{2.0})),
	}

	if _, err := checkpoint.Save(dir, "model", "abcdef0", 7, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	path, err := checkpoint.Save(dir, "model", "abcdef0", 7, second)
	if err != nil {
		t.Fatalf("second save should overwrite, got error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("could not read save directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one checkpoint file, got %v", len(entries))
	}

	params, err := checkpoint.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := params["w"].Data().([]float64)
	if got[0] != 2.0 {
		t.Errorf("checkpoint holds %v, want the overwriting value 2.0", got[0])
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	path, err := checkpoint.Save(dir, "model", "abcdef0", 1, testParams())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	params, err := checkpoint.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := testParams()
	for key, wantTensor := range want {
		gotTensor, ok := params[key]
		if !ok {
			t.Fatalf("loaded checkpoint has no parameter %q", key)
		}

		wantData := wantTensor.Data().([]float64)
		gotData := gotTensor.Data().([]float64)
		if len(gotData) != len(wantData) {
			t.Fatalf("parameter %q has %v values, want %v", key,
				len(gotData), len(wantData))
		}
		for i := range wantData {
			if gotData[i] != wantData[i] {
				t.Errorf("parameter %q value %v is %v, want %v", key, i,
					gotData[i], wantData[i])
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := checkpoint.Load(filepath.Join(t.TempDir(), "none.bin")); err == nil {
		t.Error("loading a missing checkpoint should error")
	}
}

func TestRevisionExplicit(t *testing.T) {
	revision, err := checkpoint.Revision("abcdef0")
	if err != nil {
		t.Fatalf("revision: %v", err)
	}
	if revision != "abcdef0" {
		t.Errorf("got revision %v, want abcdef0", revision)
	}
}

func TestGitRevisionBranch(t *testing.T) {
	repo := t.TempDir()
	gitDir := filepath.Join(repo, ".git")
	headsDir := filepath.Join(gitDir, "refs", "heads")
	if err := os.MkdirAll(headsDir, 0755); err != nil {
		t.Fatal(err)
	}

	hash := "0123456789abcdef0123456789abcdef01234567"
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"),
		[]byte("ref: refs/heads/main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(headsDir, "main"),
		[]byte(hash+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// The repository should be found from a nested directory
	nested := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	revision, err := checkpoint.GitRevision(nested)
	if err != nil {
		t.Fatalf("gitRevision: %v", err)
	}
	if revision != hash {
		t.Errorf("got revision %v, want %v", revision, hash)
	}
}

func TestGitRevisionDetachedHead(t *testing.T) {
	repo := t.TempDir()
	gitDir := filepath.Join(repo, ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatal(err)
	}

	hash := "fedcba9876543210fedcba9876543210fedcba98"
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"),
		[]byte(hash+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	revision, err := checkpoint.GitRevision(repo)
	if err != nil {
		t.Fatalf("gitRevision: %v", err)
	}
	if revision != hash {
		t.Errorf("got revision %v, want %v", revision, hash)
	}
}

func TestGitRevisionPackedRefs(t *testing.T) {
	repo := t.TempDir()
	gitDir := filepath.Join(repo, ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatal(err)
	}

	hash := "abcdefabcdefabcdefabcdefabcdefabcdefabcd"
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"),
		[]byte("ref: refs/heads/main\n"), 0644); err != nil {
		t.Fatal(err)
	}
	packed := "# pack-refs with: peeled fully-peeled sorted\n" +
		hash + " refs/heads/main\n"
	if err := os.WriteFile(filepath.Join(gitDir, "packed-refs"),
		[]byte(packed), 0644); err != nil {
		t.Fatal(err)
	}

	revision, err := checkpoint.GitRevision(repo)
	if err != nil {
		t.Fatalf("gitRevision: %v", err)
	}
	if revision != hash {
		t.Errorf("got revision %v, want %v", revision, hash)
	}
}
