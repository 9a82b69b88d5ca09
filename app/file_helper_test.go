package app

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestCollectPythonFilesRecursive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.py":           "print('hi')\n",
		"lib/util.py":       "x = 1\n",
		"lib/util.pyw":      "x = 1\n",
		"lib/notes.txt":     "not python\n",
		"__pycache__/m.py":  "cached\n",
		".venv/lib/site.py": "vendored\n",
	})

	helper := NewFileHelper()
	files, err := helper.CollectPythonFiles([]string{root}, true, []string{"__pycache__", ".venv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := relPaths(t, root, files)
	want := []string{"lib/util.py", "lib/util.pyw", "main.py"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestCollectPythonFilesNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.py":     "print('hi')\n",
		"lib/util.py": "x = 1\n",
	})

	helper := NewFileHelper()
	files, err := helper.CollectPythonFiles([]string{root}, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "main.py" {
		t.Errorf("expected [main.py], got %v", got)
	}
}

func TestCollectPythonFilesHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".gitignore":      "generated/\nscratch.py\n",
		"main.py":         "print('hi')\n",
		"scratch.py":      "tmp = 1\n",
		"generated/g.py":  "auto = 1\n",
		"src/included.py": "ok = 1\n",
	})

	helper := NewFileHelper()
	files, err := helper.CollectPythonFiles([]string{root}, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := relPaths(t, root, files)
	want := []string{"main.py", "src/included.py"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestCollectPythonFilesMissingPath(t *testing.T) {
	helper := NewFileHelper()
	if _, err := helper.CollectPythonFiles([]string{filepath.Join(t.TempDir(), "nope")}, true, nil); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestIsValidPythonFile(t *testing.T) {
	helper := NewFileHelper()

	tests := []struct {
		path string
		want bool
	}{
		{"script.py", true},
		{"script.pyw", true},
		{"SCRIPT.PY", true},
		{"script.txt", false},
		{"script", false},
		{"py", false},
	}

	for _, tt := range tests {
		if got := helper.IsValidPythonFile(tt.path); got != tt.want {
			t.Errorf("IsValidPythonFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "x = 1\n"})

	helper := NewFileHelper()

	exists, err := helper.FileExists(filepath.Join(root, "a.py"))
	if err != nil || !exists {
		t.Errorf("expected existing file, got exists=%v err=%v", exists, err)
	}

	exists, err = helper.FileExists(filepath.Join(root, "missing.py"))
	if err != nil || exists {
		t.Errorf("expected missing file, got exists=%v err=%v", exists, err)
	}

	// Directories do not count as files
	exists, err = helper.FileExists(root)
	if err != nil || exists {
		t.Errorf("expected directory to not count, got exists=%v err=%v", exists, err)
	}
}

func TestResolveFilePathsAllFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py":  "x = 1\n",
		"b.txt": "not python\n",
	})

	files, err := ResolveFilePaths(NewFileHelper(), []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "b.txt"),
	}, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "a.py" {
		t.Errorf("expected [a.py], got %v", got)
	}
}

func TestResolveFilePathsDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"pkg/a.py": "x = 1\n",
		"pkg/b.py": "y = 2\n",
	})

	files, err := ResolveFilePaths(NewFileHelper(), []string{filepath.Join(root, "pkg")}, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %v", files)
	}
}
