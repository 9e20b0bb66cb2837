package impression

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snapshot is an immutable, content-addressed copy of the IR at a point in
// time. ID is derived from the canonical-order serialization, so identical
// token sets always hash to the same snapshot.
type Snapshot struct {
	ID         string         `json:"id"`
	Version    string         `json:"version"`
	Message    string         `json:"message"`
	Timestamp  string         `json:"timestamp"`
	PreviousID string         `json:"previousId,omitempty"`
	Changes    int            `json:"changes"`
	Categories map[string]int `json:"categories,omitempty"`
	Severity   Severity       `json:"severity,omitempty"`
}

// storeIndex is the only mutable state in the store: the snapshot log plus
// the current pointer.
type storeIndex struct {
	Current   string     `json:"current"`
	Snapshots []Snapshot `json:"snapshots"`
}

// Store is an append-only log of design system snapshots on local disk:
// immutable snapshot files keyed by content hash, plus a small index file
// holding the one mutable `current` pointer. Concurrent writers are out of
// scope; callers serialize invocations per store directory.
type Store struct {
	dir string
}

const (
	indexFile    = "index.json"
	snapshotsDir = "snapshots"
	initialVer   = "1.0.0"
)

// OpenStore returns a handle on an existing store directory.
func OpenStore(dir string) (*Store, error) {
	if _, err := os.Stat(filepath.Join(dir, indexFile)); err != nil {
		return nil, fmt.Errorf("no snapshot store at %s (run init first): %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// InitStore creates a new empty store directory.
func InitStore(dir string) (*Store, error) {
	if _, err := os.Stat(filepath.Join(dir, indexFile)); err == nil {
		return nil, fmt.Errorf("snapshot store already initialized at %s", dir)
	}
	if err := os.MkdirAll(filepath.Join(dir, snapshotsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	s := &Store{dir: dir}
	if err := s.writeIndex(&storeIndex{}); err != nil {
		return nil, err
	}
	return s, nil
}

// ContentHash returns the SHA-256 of the IR's canonical serialization
// (sorted object keys at every level). The first 12 hex characters serve as
// the snapshot ID.
func ContentHash(ds *DesignSystem) (string, error) {
	value, err := toJSONValue(ds)
	if err != nil {
		return "", err
	}
	canonical, err := canonicalJSON(value)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// toJSONValue round-trips a value through encoding/json into the generic
// map/slice representation the diff engine operates on.
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing design system: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("reparsing design system: %w", err)
	}
	return out, nil
}

// canonicalJSON serializes with object keys in sorted order at every level.
// encoding/json already sorts map keys, so re-marshaling the generic value
// is sufficient.
func canonicalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Commit records a new snapshot of ds with the given message. It diffs
// against the current snapshot, infers the next version, writes the
// immutable snapshot file, and moves the current pointer. Committing an
// identical system is a no-op that returns the existing snapshot.
func (s *Store) Commit(ds *DesignSystem, message string) (*Snapshot, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	hash, err := ContentHash(ds)
	if err != nil {
		return nil, err
	}
	id := hash[:12]

	if current := findSnapshot(idx, idx.Current); current != nil && current.ID == id {
		return current, nil
	}

	snap := Snapshot{
		ID:        id,
		Version:   initialVer,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if current := findSnapshot(idx, idx.Current); current != nil {
		previous, err := s.Load(current.ID)
		if err != nil {
			return nil, err
		}
		changes, err := DiffSystems(previous, ds)
		if err != nil {
			return nil, err
		}
		version, err := SuggestVersion(current.Version, changes)
		if err != nil {
			return nil, err
		}
		snap.PreviousID = current.ID
		snap.Changes = len(changes)
		snap.Categories = CategorizeChanges(changes)
		snap.Severity = CalculateSeverity(changes)
		snap.Version = version
	}

	payload, err := GenerateImpression(ds)
	if err != nil {
		return nil, err
	}
	path := s.snapshotPath(snap.ID)
	if _, err := os.Stat(path); err != nil {
		// Snapshots are immutable once written; only write when absent.
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			return nil, fmt.Errorf("writing snapshot %s: %w", snap.ID, err)
		}
	}

	idx.Snapshots = append(idx.Snapshots, snap)
	idx.Current = snap.ID
	if err := s.writeIndex(idx); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Load reads the design system stored under a snapshot ID.
func (s *Store) Load(id string) (*DesignSystem, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", id, err)
	}
	return ParseImpression(data)
}

// List returns all snapshots in commit order.
func (s *Store) List() ([]Snapshot, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Snapshots, nil
}

// Current returns the snapshot the current pointer references, or nil for
// an empty store.
func (s *Store) Current() (*Snapshot, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return findSnapshot(idx, idx.Current), nil
}

// Diff computes the change set between two snapshots by ID. Either ID may
// be "current".
func (s *Store) Diff(fromID, toID string) ([]Change, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	from, err := s.resolve(idx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.resolve(idx, toID)
	if err != nil {
		return nil, err
	}
	before, err := s.Load(from.ID)
	if err != nil {
		return nil, err
	}
	after, err := s.Load(to.ID)
	if err != nil {
		return nil, err
	}
	return DiffSystems(before, after)
}

// Rollback moves the current pointer to an earlier snapshot and returns its
// design system. The snapshot log is append-only: nothing is deleted.
func (s *Store) Rollback(id string) (*DesignSystem, *Snapshot, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, nil, err
	}
	snap, err := s.resolve(idx, id)
	if err != nil {
		return nil, nil, err
	}
	ds, err := s.Load(snap.ID)
	if err != nil {
		return nil, nil, err
	}
	idx.Current = snap.ID
	if err := s.writeIndex(idx); err != nil {
		return nil, nil, err
	}
	return ds, snap, nil
}

// Changelog renders the snapshot chain as a markdown changelog, newest
// first.
func (s *Store) Changelog() (string, error) {
	idx, err := s.readIndex()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# Design System Changelog\n")
	for i := len(idx.Snapshots) - 1; i >= 0; i-- {
		snap := idx.Snapshots[i]
		marker := ""
		if snap.ID == idx.Current {
			marker = " (current)"
		}
		fmt.Fprintf(&b, "\n## v%s — %s%s\n\n", snap.Version, snap.Timestamp, marker)
		if snap.Message != "" {
			fmt.Fprintf(&b, "%s\n\n", snap.Message)
		}
		fmt.Fprintf(&b, "- Snapshot: `%s`\n", snap.ID)
		if snap.Changes > 0 {
			fmt.Fprintf(&b, "- Changes: %d (severity: %s)\n", snap.Changes, snap.Severity)
			cats := make([]string, 0, len(snap.Categories))
			for cat := range snap.Categories {
				cats = append(cats, cat)
			}
			sort.Strings(cats)
			for _, cat := range cats {
				fmt.Fprintf(&b, "  - %s: %d\n", cat, snap.Categories[cat])
			}
		}
	}
	return b.String(), nil
}

func (s *Store) resolve(idx *storeIndex, id string) (*Snapshot, error) {
	if id == "current" || id == "" {
		id = idx.Current
	}
	snap := findSnapshot(idx, id)
	if snap == nil {
		return nil, fmt.Errorf("unknown snapshot %q", id)
	}
	return snap, nil
}

func findSnapshot(idx *storeIndex, id string) *Snapshot {
	if id == "" {
		return nil
	}
	for i := range idx.Snapshots {
		if idx.Snapshots[i].ID == id || strings.HasPrefix(idx.Snapshots[i].ID, id) {
			return &idx.Snapshots[i]
		}
	}
	return nil
}

func (s *Store) snapshotPath(id string) string {
	return filepath.Join(s.dir, snapshotsDir, id+".json")
}

func (s *Store) readIndex() (*storeIndex, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("reading store index: %w", err)
	}
	var idx storeIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("corrupt store index: %w", err)
	}
	return &idx, nil
}

func (s *Store) writeIndex(idx *storeIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, indexFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing store index: %w", err)
	}
	return nil
}
