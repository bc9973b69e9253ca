package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevinawalsh/fixpoint"
)

var closureBound int

var closureCmd = &cobra.Command{
	Use:   "closure",
	Short: "Compute the symmetric closure of the adjacent-pair relation over [0, bound]",
	RunE: func(cmd *cobra.Command, args []string) error {
		bound := closureBound
		if bound <= 0 {
			bound = cfg.Bound
		}

		it := fixpoint.NewIteration()
		v := fixpoint.NewVariable[pair](it, "pairs", comparePair)

		var seed []pair
		for x := 0; x < bound; x++ {
			seed = append(seed, pair{x, x + 1}, pair{x + 1, x})
		}
		v.Insert(fixpoint.NewRelation(seed, comparePair))

		round := 0
		for it.Step() {
			round++
			logger.Sugar().Debugf("closure round %d: recent=%d", round, len(v.Recent()))
			fixpoint.Join(v, v, v, intCmp,
				func(p pair) int { return p.a },
				func(p pair) int { return p.a },
				func(_ int, p1, p2 pair) pair { return pair{p1.b, p2.b} },
			)
		}

		result := v.Complete()
		fmt.Printf("symmetric closure over [0, %d]: %d pairs in %d rounds\n", bound, result.Len(), round)
		return nil
	},
}

func init() {
	closureCmd.Flags().IntVar(&closureBound, "bound", 0, "exclusive upper bound for the seed range (defaults to config)")
}
