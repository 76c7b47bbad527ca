package ml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	executable = func() (string, error) { return "/opt/aptprice/aptprice", nil }
	defer func() { executable = os.Executable }()

	got, err := ResolvePath("models/tree.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join("/opt/aptprice", "models/tree.json") {
		t.Fatalf("unexpected path: %s", got)
	}

	abs := filepath.Join(t.TempDir(), "tree.json")
	if got, _ := ResolvePath(abs); got != abs {
		t.Fatalf("absolute path changed: %s", got)
	}

	if _, err := ResolvePath(""); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestLoadModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := sampleTree().Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	model, err := LoadModel(DecisionTreeRegressorType, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := model.Predict([][]float64{{10, 0}})
	if err != nil || got[0] != 1.5 {
		t.Fatalf("unexpected prediction %v, %v", got, err)
	}

	if _, err := LoadModel("random_forest", path); !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("expected ErrUnsupportedModel, got %v", err)
	}
	if _, err := LoadModel(DecisionTreeRegressorType, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadModelCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(DecisionTreeRegressorType, path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidateSchema(t *testing.T) {
	model := sampleTree()

	checked, err := ValidateSchema(model, []string{"Area", "Flag"})
	if err != nil || !checked {
		t.Fatalf("expected matching schema, got checked=%v err=%v", checked, err)
	}

	_, err = ValidateSchema(model, []string{"Flag", "Area"})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}

	_, err = ValidateSchema(model, []string{"Area"})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}

	bare := NewDecisionTree(nil, []TreeNode{{IsLeaf: true, Value: 1}})
	checked, err = ValidateSchema(bare, []string{"Area"})
	if err != nil || checked {
		t.Fatalf("expected unchecked schema, got checked=%v err=%v", checked, err)
	}
}

func TestLoadModelCyclic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	body := `{"model_type":"decision_tree_regressor","nodes":[
		{"feature_idx":0,"threshold":1,"left_child":1,"right_child":2},
		{"feature_idx":0,"threshold":1,"left_child":2,"right_child":2},
		{"feature_idx":0,"threshold":1,"left_child":1,"right_child":1}
	]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(DecisionTreeRegressorType, path); !errors.Is(err, ErrInvalidTree) {
		t.Fatalf("expected ErrInvalidTree, got %v", err)
	}
}

func TestLoadModelChildOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	body := `{"nodes":[
		{"feature_idx":0,"threshold":1,"left_child":1,"right_child":7},
		{"feature_idx":-1,"is_leaf":true,"value":1}
	]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadModel(DecisionTreeRegressorType, path); !errors.Is(err, ErrInvalidTree) {
		t.Fatalf("expected ErrInvalidTree, got %v", err)
	}
}

func TestResolvePathPrefersExecutableDir(t *testing.T) {
	exeDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(exeDir, "models"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(exeDir, "models", "tree.json")
	if err := os.WriteFile(want, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	executable = func() (string, error) { return filepath.Join(exeDir, "aptprice"), nil }
	defer func() { executable = os.Executable }()

	got, err := ResolvePath("models/tree.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestResolvePathFallsBackToWorkingDir(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)
	if err := os.MkdirAll("models", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("models", "tree.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	// go run places the binary in a build cache directory with no models/ next to it
	executable = func() (string, error) { return filepath.Join(t.TempDir(), "exe", "aptprice"), nil }
	defer func() { executable = os.Executable }()

	got, err := ResolvePath("models/tree.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join("models", "tree.json"))
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
