package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DecisionTreeRegressorType is the model_type written into tree artifacts.
const DecisionTreeRegressorType = "decision_tree_regressor"

// DecisionTree is a regression tree stored as a flat pre-order node list.
type DecisionTree struct {
	features []string
	nodes    []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

// treeArtifact is the on-disk layout of a decision tree model file.
type treeArtifact struct {
	ModelType    string     `json:"model_type"`
	FeatureNames []string   `json:"feature_names,omitempty"`
	Nodes        []TreeNode `json:"nodes"`
}

func NewDecisionTree(features []string, nodes []TreeNode) *DecisionTree {
	return &DecisionTree{
		features: append([]string(nil), features...),
		nodes:    append([]TreeNode(nil), nodes...),
	}
}

// Predict walks the tree once per row.
func (dt *DecisionTree) Predict(rows [][]float64) ([]float64, error) {
	if len(dt.nodes) == 0 {
		return nil, ErrModelNotLoaded
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		value, err := dt.predictRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = value
	}
	return out, nil
}

func (dt *DecisionTree) predictRow(features []float64) (float64, error) {
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, fmt.Errorf("feature index %d out of range for %d features", node.FeatureIdx, len(features))
		}
		next := node.RightChild
		if features[node.FeatureIdx] <= node.Threshold {
			next = node.LeftChild
		}
		// children always sit after their parent, so the walk cannot revisit a node
		if next <= idx || next >= len(dt.nodes) {
			return 0, errors.New("invalid tree state")
		}
		idx = next
	}
}

func (dt *DecisionTree) FeatureNames() []string {
	return append([]string(nil), dt.features...)
}

func (dt *DecisionTree) Save(path string) error {
	if len(dt.nodes) == 0 {
		return ErrModelNotLoaded
	}
	payload, err := json.MarshalIndent(treeArtifact{
		ModelType:    DecisionTreeRegressorType,
		FeatureNames: dt.features,
		Nodes:        dt.nodes,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (dt *DecisionTree) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if artifact.ModelType != "" && artifact.ModelType != DecisionTreeRegressorType {
		return fmt.Errorf("%w: %s", ErrUnsupportedModel, artifact.ModelType)
	}
	if len(artifact.Nodes) == 0 {
		return fmt.Errorf("decode %s: %w", path, ErrModelNotLoaded)
	}
	if err := validateNodes(artifact.Nodes); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	dt.features = artifact.FeatureNames
	dt.nodes = artifact.Nodes
	return nil
}

// validateNodes checks the pre-order layout: every internal node points at two
// later nodes, which rules out cycles.
func validateNodes(nodes []TreeNode) error {
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(nodes) {
				return fmt.Errorf("%w: node %d has child %d", ErrInvalidTree, i, child)
			}
		}
	}
	return nil
}

// Depth returns the longest root-to-leaf path, counting the root as depth 0.
func (dt *DecisionTree) Depth() int {
	if len(dt.nodes) == 0 {
		return 0
	}
	return dt.depthFrom(0, 0)
}

func (dt *DecisionTree) depthFrom(idx, seen int) int {
	if idx < 0 || idx >= len(dt.nodes) || seen > len(dt.nodes) {
		return 0
	}
	node := dt.nodes[idx]
	if node.IsLeaf {
		return 0
	}
	left := dt.depthFrom(node.LeftChild, seen+1)
	right := dt.depthFrom(node.RightChild, seen+1)
	if left > right {
		return left + 1
	}
	return right + 1
}

func (dt *DecisionTree) NodeCount() int {
	return len(dt.nodes)
}
