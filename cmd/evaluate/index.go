package main

import (
	"fmt"

	"github.com/FrenchMajesty/classresult"
	"github.com/FrenchMajesty/classresult/adapters/pinecone"
	"github.com/spf13/cobra"
)

// defaultNamespace is the Pinecone namespace used when none is configured
const defaultNamespace = "trials"

// newVectorIndex opens the index the index command writes to. Tests replace it.
var newVectorIndex = func(namespace string) (classresult.VectorIndex, error) {
	return pinecone.NewLikelihoodIndex(nil, nil, namespace)
}

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <results>",
		Short: "Store class likelihood vectors in Pinecone",
		Long:  "index upserts the class likelihood vector of every result into Pinecone. Credentials come from PINECONE_API_KEY and PINECONE_HOST.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}

			namespace, _ := cmd.Flags().GetString("namespace")
			if namespace == "" {
				namespace = cfg.Pinecone.Namespace
			}
			if namespace == "" {
				namespace = defaultNamespace
			}

			results, err := loadResults(ctx, args[0])
			if err != nil {
				return err
			}

			index, err := newVectorIndex(namespace)
			if err != nil {
				return err
			}

			evalCfg := cfg.evaluatorConfig()
			evalCfg.VectorIndex = index
			eval, err := newEvaluator(ctx, evalCfg, results)
			if err != nil {
				return err
			}
			if failed := eval.IndexFailures(); failed > 0 {
				return fmt.Errorf("failed to index %d of %d results", failed, len(results))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d results to namespace %q\n", len(results), namespace)
			return nil
		},
	}

	cmd.Flags().String("namespace", "", "Pinecone namespace (default \"trials\")")

	return cmd
}
