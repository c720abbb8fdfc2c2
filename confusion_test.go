package classresult_test

import (
	"testing"

	"github.com/FrenchMajesty/classresult"
	"github.com/stretchr/testify/assert"
)

func trial(trueLabel, predicted uint) classresult.Result {
	return classresult.NewResult(classresult.Fields{TrueLabel: trueLabel, PredictedLabel: predicted, RawPredictedLabel: predicted})
}

func TestConfusionMatrix_Counts(t *testing.T) {
	results := []classresult.Result{
		trial(1, 1), trial(1, 1), trial(1, 2),
		trial(2, 2), trial(2, 3),
		trial(3, 3),
	}

	cm := classresult.NewConfusionMatrix(nil, results)

	assert.Equal(t, []uint{1, 2, 3}, cm.Labels())
	assert.Equal(t, [][]int{
		{2, 1, 0},
		{0, 1, 1},
		{0, 0, 1},
	}, cm.Rows())
	assert.Equal(t, 2, cm.Count(1, 1))
	assert.Equal(t, 3, cm.Support(1))
	assert.Equal(t, 2, cm.Predicted(2))
	assert.InDelta(t, 1.0/3, cm.Rate(1, 2), 1e-9)

	// Unknown labels count as zero
	assert.Equal(t, 0, cm.Count(9, 1))
	assert.Equal(t, 0, cm.Support(9))
	assert.Equal(t, 0.0, cm.Rate(9, 1))
}

func TestConfusionMatrix_ConfiguredLabels(t *testing.T) {
	cm := classresult.NewConfusionMatrix([]uint{4, 1, 4}, []classresult.Result{trial(2, 1)})

	assert.Equal(t, []uint{1, 2, 4}, cm.Labels())
	assert.Equal(t, 0, cm.Support(4))
	assert.Equal(t, 1, cm.Predicted(1))
}

func TestConfusionMatrix_Empty(t *testing.T) {
	cm := classresult.NewConfusionMatrix(nil, nil)

	assert.Empty(t, cm.Labels())
	assert.Empty(t, cm.Rows())
	assert.Equal(t, 0, cm.Count(1, 1))
	assert.Empty(t, cm.Clusters(0.1))
}

func TestConfusionMatrix_Clusters(t *testing.T) {
	results := []classresult.Result{
		// 1 and 2 are confused half the time
		trial(1, 1), trial(1, 2),
		// 3 is confused with 4 a quarter of the time, and 4 with 5
		trial(3, 3), trial(3, 3), trial(3, 3), trial(3, 4),
		trial(4, 4), trial(4, 4), trial(4, 4), trial(4, 5),
		trial(5, 5),
		// 6 is rarely confused
		trial(6, 6), trial(6, 6), trial(6, 6), trial(6, 6), trial(6, 6),
		trial(6, 6), trial(6, 6), trial(6, 6), trial(6, 6), trial(6, 1),
	}

	cm := classresult.NewConfusionMatrix(nil, results)

	assert.Equal(t, [][]uint{{1, 2}, {3, 4, 5}}, cm.Clusters(0.2))
	assert.Equal(t, [][]uint{{1, 2}}, cm.Clusters(0.5))
	assert.Equal(t, [][]uint{{1, 2, 6}, {3, 4, 5}}, cm.Clusters(0.1))
}

func TestConfusionMatrix_ClustersSkipRejection(t *testing.T) {
	results := []classresult.Result{
		trial(1, 0), trial(1, 0), trial(1, 1),
		trial(2, 0), trial(2, 2),
	}

	cm := classresult.NewConfusionMatrix(nil, results)

	assert.Equal(t, [][]uint{{0, 1, 2}}, cm.Clusters(0.2))
	assert.Empty(t, cm.Clusters(0.2, classresult.NullRejectionLabel))
}
