package disjoint_set

import (
	"cmp"
	"slices"
	"sync"
)

// DSU represents a Disjoint Set Union data structure over class labels
type DSU = dsu

type dsu struct {
	root       []int
	rank       []int
	labels     map[uint]int
	labelIndex map[int]uint
	lock       sync.RWMutex
}

// NewDSU creates a new empty DSU
func NewDSU() *dsu {
	return &dsu{
		root:       make([]int, 0),
		rank:       make([]int, 0),
		labels:     make(map[uint]int),
		labelIndex: make(map[int]uint),
	}
}

// Add adds a new group to the DSU. Returns the index of the new group.
// Adding a label that is already present returns its existing index.
func (d *dsu) Add(label uint) int {
	d.lock.Lock()
	defer d.lock.Unlock()

	if idx, ok := d.labels[label]; ok {
		return idx
	}
	return d.add(label)
}

// add adds a new group to the DSU. Returns the index of the new group. (internal, unlocked, caller must hold lock)
func (d *dsu) add(label uint) int {
	d.root = append(d.root, len(d.root))
	d.rank = append(d.rank, 0)
	d.labels[label] = len(d.root) - 1
	d.labelIndex[len(d.root)-1] = label
	return d.labels[label]
}

// find finds the root of the set (internal, unlocked - caller must hold lock)
func (d *dsu) find(x int) int {
	if d.root[x] == x {
		return x
	}

	d.root[x] = d.find(d.root[x]) // Path compression
	return d.root[x]
}

// FindOrCreate finds the root of the set by label, or adds it if it doesn't exist
func (d *dsu) FindOrCreate(label uint) int {
	d.lock.Lock()
	defer d.lock.Unlock()

	idx, ok := d.labels[label]
	if !ok {
		return d.add(label)
	}

	return d.find(idx)
}

// Union merges two sets
func (d *dsu) Union(x int, y int) {
	d.lock.Lock()
	defer d.lock.Unlock()

	rootX := d.find(x)
	rootY := d.find(y)

	if rootX == rootY {
		return
	}

	if d.rank[rootX] > d.rank[rootY] {
		d.root[rootY] = rootX
	} else if d.rank[rootX] < d.rank[rootY] {
		d.root[rootX] = rootY
	} else {
		d.root[rootY] = rootX
		d.rank[rootX]++
	}
}

// UnionLabels merges the sets holding the two labels, adding either label if missing
func (d *dsu) UnionLabels(a uint, b uint) {
	d.Union(d.FindOrCreate(a), d.FindOrCreate(b))
}

// CountSets returns the number of unique sets in the DSU
func (d *dsu) CountSets() int {
	d.lock.Lock()
	defer d.lock.Unlock()

	rootSet := make(map[int]bool)
	for i := range d.root {
		rootSet[d.find(i)] = true
	}

	return len(rootSet)
}

// Groups returns the members of every set holding at least minSize labels.
// Each group is sorted, and groups are ordered by their smallest label.
func (d *dsu) Groups(minSize int) [][]uint {
	d.lock.Lock()
	defer d.lock.Unlock()

	byRoot := make(map[int][]uint)
	for i := range d.root {
		r := d.find(i)
		byRoot[r] = append(byRoot[r], d.labelIndex[i])
	}

	groups := make([][]uint, 0, len(byRoot))
	for _, members := range byRoot {
		if len(members) < minSize {
			continue
		}
		slices.Sort(members)
		groups = append(groups, members)
	}

	slices.SortFunc(groups, func(a, b []uint) int {
		return cmp.Compare(a[0], b[0])
	})
	return groups
}
