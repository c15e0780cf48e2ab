package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
)

// Well-known root names the classifier keys on. The taxonomy asset is
// versioned independently; these names are its stable contract.
const (
	RootDining    = "Dining & Drinking"
	RootArts      = "Arts & Entertainment"
	RootLandmarks = "Landmarks & Outdoors"
	RootSports    = "Sports & Recreation"
	RootEvents    = "Events"
)

type Node struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Label    string `json:"label"` // full display path, e.g. "Dining & Drinking > Cafe"
	ParentID int    `json:"parent_id"` // 0 for roots
	ChildIDs []int  `json:"child_ids"`
}

// Table is the read-only id→node forest. It is loaded once at startup and
// never mutated afterwards, so concurrent readers need no locking.
type Table struct {
	nodes       map[int]Node
	rootsByName map[string]int
}

func NewTable(nodes []Node) *Table {
	t := &Table{
		nodes:       make(map[int]Node, len(nodes)),
		rootsByName: make(map[string]int),
	}
	for _, n := range nodes {
		t.nodes[n.ID] = n
		if n.ParentID == 0 {
			t.rootsByName[n.Name] = n.ID
		}
	}
	return t
}

// LoadFromFile reads a JSON array of nodes.
func LoadFromFile(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy asset: %w", err)
	}
	var nodes []Node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("parse taxonomy asset: %w", err)
	}
	return NewTable(nodes), nil
}

func (t *Table) Node(id int) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

func (t *Table) RootIDByName(name string) (int, bool) {
	id, ok := t.rootsByName[name]
	return id, ok
}

// RootOf ascends the parent chain to the root. The visited set guards
// against malformed assets with cycles; ascent always terminates.
func (t *Table) RootOf(id int) (Node, bool) {
	visited := make(map[int]struct{})
	cur, ok := t.nodes[id]
	if !ok {
		return Node{}, false
	}
	for cur.ParentID != 0 {
		if _, seen := visited[cur.ID]; seen {
			return Node{}, false
		}
		visited[cur.ID] = struct{}{}
		parent, ok := t.nodes[cur.ParentID]
		if !ok {
			return Node{}, false
		}
		cur = parent
	}
	return cur, true
}

// IsDescendant reports whether categoryID sits anywhere under rootID,
// including categoryID == rootID.
func (t *Table) IsDescendant(categoryID, rootID int) bool {
	visited := make(map[int]struct{})
	cur, ok := t.nodes[categoryID]
	if !ok {
		return false
	}
	for {
		if cur.ID == rootID {
			return true
		}
		if cur.ParentID == 0 {
			return false
		}
		if _, seen := visited[cur.ID]; seen {
			return false
		}
		visited[cur.ID] = struct{}{}
		parent, ok := t.nodes[cur.ParentID]
		if !ok {
			return false
		}
		cur = parent
	}
}
