package classresult_test

import (
	"context"
	"fmt"
	"log"

	"github.com/FrenchMajesty/classresult"
)

func ExampleResult_IsCorrectPrediction() {
	r := classresult.NewResult(classresult.Fields{
		TrueLabel:         2,
		PredictedLabel:    2,
		RawPredictedLabel: 2,
		MaximumLikelihood: 0.8,
		ClassLikelihoods:  []float64{0.1, 0.8, 0.1},
		ClassDistances:    []float64{1.9, 0.3, 2.4},
	})

	fmt.Println(r.IsCorrectPrediction())
	fmt.Println(r.ClassLikelihoods())
	// Output:
	// true
	// [0.1 0.8 0.1]
}

// Example shows scoring a handful of trials
func Example() {
	eval, err := classresult.NewEvaluator(context.Background(), classresult.Config{})
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range [][2]uint{{1, 1}, {1, 2}, {2, 2}, {2, 2}} {
		r := classresult.NewBuilder().
			TrueLabel(p[0]).
			RawPredictedLabel(p[1]).
			PredictedLabel(p[1]).
			Build()
		if err := eval.Add(context.Background(), r); err != nil {
			log.Fatal(err)
		}
	}

	m := eval.Metrics()
	fmt.Printf("Accuracy: %.2f\n", m.Accuracy)
	fmt.Printf("Clusters: %v\n", m.ConfusionClusters)
	// Output:
	// Accuracy: 0.75
	// Clusters: [[1 2]]
}
