package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevinawalsh/fixpoint"
)

var antijoinBound int

var antijoinCmd = &cobra.Command{
	Use:   "antijoin",
	Short: "Keep only the swapped adjacent pairs whose key is not a multiple of three",
	RunE: func(cmd *cobra.Command, args []string) error {
		bound := antijoinBound
		if bound <= 0 {
			bound = cfg.Bound
		}

		it := fixpoint.NewIteration()
		v := fixpoint.NewVariable[pair](it, "pairs", comparePair)

		var seed []pair
		for x := 0; x < bound; x++ {
			seed = append(seed, pair{x, x + 1})
		}
		v.Insert(fixpoint.NewRelation(seed, comparePair))

		var multiplesOf3 []int
		for x := 0; x < bound; x++ {
			if x%3 == 0 {
				multiplesOf3 = append(multiplesOf3, x)
			}
		}
		excluded := fixpoint.NewRelation(multiplesOf3, intCmp)

		round := 0
		for it.Step() {
			round++
			logger.Sugar().Debugf("antijoin round %d: recent=%d", round, len(v.Recent()))
			fixpoint.Antijoin(v, excluded, v, intCmp,
				func(p pair) int { return p.a },
				func(key int, p pair) pair { return pair{p.b, key} },
			)
		}

		result := v.Complete()
		fmt.Printf("antijoin over [0, %d): %d surviving pairs in %d rounds\n", bound, result.Len(), round)
		return nil
	},
}

func init() {
	antijoinCmd.Flags().IntVar(&antijoinBound, "bound", 0, "exclusive upper bound for the seed range (defaults to config)")
}
