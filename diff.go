package impression

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ChangeType classifies one structural change.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change is a single difference between two IR snapshots.
type Change struct {
	Type   ChangeType `json:"type"`
	Path   string     `json:"path"`
	Before any        `json:"before,omitempty"`
	After  any        `json:"after,omitempty"`
}

// Severity summarizes how impactful a set of changes is.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DeepDiff recursively compares two values and returns every structural
// change. Arrays are compared positionally by index, not by content
// alignment: an insertion shifts every subsequent element into a changed
// pair. That is a documented limitation of the diff, kept for parity with
// snapshot history already produced under these semantics.
func DeepDiff(before, after any, path string) []Change {
	if before == nil && after == nil {
		return nil
	}
	if before == nil {
		return []Change{{Type: ChangeAdded, Path: path, After: after}}
	}
	if after == nil {
		return []Change{{Type: ChangeRemoved, Path: path, Before: before}}
	}

	switch b := before.(type) {
	case map[string]any:
		a, ok := after.(map[string]any)
		if !ok {
			return []Change{{Type: ChangeChanged, Path: path, Before: before, After: after}}
		}
		return diffMaps(b, a, path)
	case []any:
		a, ok := after.([]any)
		if !ok {
			return []Change{{Type: ChangeChanged, Path: path, Before: before, After: after}}
		}
		return diffSlices(b, a, path)
	default:
		if before != after {
			return []Change{{Type: ChangeChanged, Path: path, Before: before, After: after}}
		}
	}
	return nil
}

// diffMaps compares objects over the union of their key sets, in sorted key
// order for deterministic output.
func diffMaps(before, after map[string]any, path string) []Change {
	keys := make(map[string]bool, len(before)+len(after))
	for k := range before {
		keys[k] = true
	}
	for k := range after {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []Change
	for _, k := range sorted {
		childPath := k
		if path != "" {
			childPath = path + "." + k
		}
		bv, inBefore := before[k]
		av, inAfter := after[k]
		switch {
		case !inBefore:
			changes = append(changes, Change{Type: ChangeAdded, Path: childPath, After: av})
		case !inAfter:
			changes = append(changes, Change{Type: ChangeRemoved, Path: childPath, Before: bv})
		default:
			changes = append(changes, DeepDiff(bv, av, childPath)...)
		}
	}
	return changes
}

func diffSlices(before, after []any, path string) []Change {
	var changes []Change
	n := len(before)
	if len(after) > n {
		n = len(after)
	}
	for i := 0; i < n; i++ {
		childPath := path + "[" + strconv.Itoa(i) + "]"
		switch {
		case i >= len(before):
			changes = append(changes, Change{Type: ChangeAdded, Path: childPath, After: after[i]})
		case i >= len(after):
			changes = append(changes, Change{Type: ChangeRemoved, Path: childPath, Before: before[i]})
		default:
			changes = append(changes, DeepDiff(before[i], after[i], childPath)...)
		}
	}
	return changes
}

// DiffSystems diffs two IRs through their canonical JSON form, so the change
// paths match the serialized schema.
func DiffSystems(before, after *DesignSystem) ([]Change, error) {
	bm, err := toJSONValue(before)
	if err != nil {
		return nil, err
	}
	am, err := toJSONValue(after)
	if err != nil {
		return nil, err
	}
	return DeepDiff(bm, am, ""), nil
}

// CategorizeChanges buckets changes by the first path segment (colors,
// typography, spacing, …).
func CategorizeChanges(changes []Change) map[string]int {
	categories := make(map[string]int)
	for _, c := range changes {
		categories[firstSegment(c.Path)]++
	}
	return categories
}

func firstSegment(path string) string {
	if path == "" {
		return "root"
	}
	end := len(path)
	if i := strings.IndexAny(path, ".["); i >= 0 {
		end = i
	}
	return path[:end]
}

// Thresholds for severity classification.
const (
	criticalColorChanges      = 5
	criticalTypographyChanges = 3
	highCategoryCount         = 4
	mediumTotalChanges        = 10
)

// CalculateSeverity classifies a change set. Color and typography churn is
// weighted heaviest because downstream consumers key brand identity off
// those categories.
func CalculateSeverity(changes []Change) Severity {
	if len(changes) == 0 {
		return SeverityNone
	}
	categories := CategorizeChanges(changes)
	if categories["colors"] > criticalColorChanges || categories["typography"] > criticalTypographyChanges {
		return SeverityCritical
	}
	if len(categories) >= highCategoryCount {
		return SeverityHigh
	}
	if len(changes) > mediumTotalChanges {
		return SeverityMedium
	}
	return SeverityLow
}

// SuggestVersion proposes a semantic version bump for a change set.
// Major: breaking categories (colors or typography) touched and more than 10
// total changes. Minor: more than 5 additions. Otherwise patch.
func SuggestVersion(current string, changes []Change) (string, error) {
	major, minor, patch, err := parseSemver(current)
	if err != nil {
		return "", err
	}
	if len(changes) == 0 {
		return current, nil
	}

	categories := CategorizeChanges(changes)
	breaking := categories["colors"] > 0 || categories["typography"] > 0
	added := 0
	for _, c := range changes {
		if c.Type == ChangeAdded {
			added++
		}
	}

	switch {
	case breaking && len(changes) > 10:
		return fmt.Sprintf("%d.0.0", major+1), nil
	case added > 5:
		return fmt.Sprintf("%d.%d.0", major, minor+1), nil
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch+1), nil
}

func parseSemver(v string) (major, minor, patch int, err error) {
	parts := strings.SplitN(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid semver %q", v)
	}
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid semver %q", v)
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid semver %q", v)
	}
	// Tolerate pre-release/build suffixes on the patch component.
	patchStr := parts[2]
	if i := strings.IndexAny(patchStr, "-+"); i >= 0 {
		patchStr = patchStr[:i]
	}
	if patch, err = strconv.Atoi(patchStr); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid semver %q", v)
	}
	return major, minor, patch, nil
}
