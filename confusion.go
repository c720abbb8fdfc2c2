package classresult

import (
	"slices"

	"github.com/FrenchMajesty/classresult/utils/disjoint_set"
	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix counts predictions per true label. Rows are true labels and
// columns are predicted labels, both in ascending label order.
type ConfusionMatrix struct {
	labels []uint
	index  map[uint]int
	counts *mat.Dense
}

// NewConfusionMatrix builds the confusion matrix of results over the given labels.
// Labels that appear in results but not in labels are added.
func NewConfusionMatrix(labels []uint, results []Result) *ConfusionMatrix {
	all := slices.Clone(labels)
	for _, r := range results {
		all = append(all, r.trueLabel, r.predictedLabel)
	}
	slices.Sort(all)
	all = slices.Compact(all)

	cm := &ConfusionMatrix{
		labels: all,
		index:  make(map[uint]int, len(all)),
	}
	for i, label := range all {
		cm.index[label] = i
	}

	// mat.NewDense panics on zero dimensions
	if len(all) == 0 {
		return cm
	}

	cm.counts = mat.NewDense(len(all), len(all), nil)
	for _, r := range results {
		i, j := cm.index[r.trueLabel], cm.index[r.predictedLabel]
		cm.counts.Set(i, j, cm.counts.At(i, j)+1)
	}

	return cm
}

// Labels returns the labels of the matrix rows and columns
func (cm *ConfusionMatrix) Labels() []uint {
	return slices.Clone(cm.labels)
}

// Count returns how many results with trueLabel were predicted as predicted
func (cm *ConfusionMatrix) Count(trueLabel uint, predicted uint) int {
	i, ok := cm.index[trueLabel]
	if !ok {
		return 0
	}
	j, ok := cm.index[predicted]
	if !ok {
		return 0
	}
	return int(cm.counts.At(i, j))
}

// Support returns the number of results whose true label is label
func (cm *ConfusionMatrix) Support(label uint) int {
	i, ok := cm.index[label]
	if !ok {
		return 0
	}
	return int(mat.Sum(cm.counts.RowView(i)))
}

// Predicted returns the number of results predicted as label
func (cm *ConfusionMatrix) Predicted(label uint) int {
	j, ok := cm.index[label]
	if !ok {
		return 0
	}
	return int(mat.Sum(cm.counts.ColView(j)))
}

// Rate returns the share of trueLabel results that were predicted as predicted
func (cm *ConfusionMatrix) Rate(trueLabel uint, predicted uint) float64 {
	return ratio(cm.Count(trueLabel, predicted), cm.Support(trueLabel))
}

// Rows returns the matrix counts, one row per true label
func (cm *ConfusionMatrix) Rows() [][]int {
	rows := make([][]int, len(cm.labels))
	for i := range cm.labels {
		rows[i] = make([]int, len(cm.labels))
		for j := range cm.labels {
			rows[i][j] = int(cm.counts.At(i, j))
		}
	}
	return rows
}

// Clusters groups labels whose pairwise confusion rate reaches threshold.
// Labels listed in skip never join a cluster. Only groups of two or more labels are returned.
func (cm *ConfusionMatrix) Clusters(threshold float64, skip ...uint) [][]uint {
	return cm.unionConfused(threshold, skip).Groups(2)
}

// unionConfused returns a DSU holding every label not in skip, with labels whose
// confusion rate reaches threshold merged into one set
func (cm *ConfusionMatrix) unionConfused(threshold float64, skip []uint) *disjoint_set.DSU {
	dsu := disjoint_set.NewDSU()
	for _, t := range cm.labels {
		if slices.Contains(skip, t) {
			continue
		}
		dsu.Add(t)
		for _, p := range cm.labels {
			if p == t || slices.Contains(skip, p) || cm.Count(t, p) == 0 {
				continue
			}
			if cm.Rate(t, p) >= threshold {
				dsu.UnionLabels(t, p)
			}
		}
	}
	return dsu
}

// ratio returns n / d, or 0 when d is 0
func ratio(n int, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
