package ml

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// executable is swapped in tests.
var executable = os.Executable

// ResolvePath returns name unchanged when it is absolute and otherwise joins it
// onto the directory holding the running binary. Under `go run` the binary lives
// in the build cache, so when nothing exists next to it a file at name relative
// to the working directory is used instead.
func ResolvePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("model path is required")
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	candidate := filepath.Join(filepath.Dir(exe), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	return candidate, nil
}

// LoadModel reads the artifact at path for the given model type.
func LoadModel(modelType, path string) (Regressor, error) {
	switch modelType {
	case DecisionTreeRegressorType, "decision_tree", "":
		model := &DecisionTree{}
		if err := model.Load(path); err != nil {
			return nil, err
		}
		return model, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModel, modelType)
	}
}

// ValidateSchema checks the column order recorded in the artifact against want.
// It reports false when the model carries no schema to compare.
func ValidateSchema(model Regressor, want []string) (bool, error) {
	aware, ok := model.(SchemaAware)
	if !ok {
		return false, nil
	}
	got := aware.FeatureNames()
	if len(got) == 0 {
		return false, nil
	}
	if slices.Equal(got, want) {
		return true, nil
	}
	if len(got) != len(want) {
		return true, fmt.Errorf("%w: model has %d columns, expected %d", ErrSchemaMismatch, len(got), len(want))
	}
	diffs := make([]string, 0)
	for i := range got {
		if got[i] != want[i] {
			diffs = append(diffs, fmt.Sprintf("[%d] %q != %q", i, got[i], want[i]))
		}
	}
	return true, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(diffs, ", "))
}
