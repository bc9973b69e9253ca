package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevinawalsh/fixpoint"
)

var collatzBound int

var collatzCmd = &cobra.Command{
	Use:   "collatz",
	Short: "Trace the Collatz trajectory of every starting value in [0, bound) via Map",
	RunE: func(cmd *cobra.Command, args []string) error {
		bound := collatzBound
		if bound <= 0 {
			bound = cfg.Bound
		}

		it := fixpoint.NewIteration()
		v := fixpoint.NewVariable[pair](it, "trajectory", comparePair)

		var seed []pair
		for x := 0; x < bound; x++ {
			seed = append(seed, pair{x, x})
		}
		v.Insert(fixpoint.NewRelation(seed, comparePair))

		round := 0
		for it.Step() {
			round++
			logger.Sugar().Debugf("collatz round %d: recent=%d", round, len(v.Recent()))
			fixpoint.Map(v, v, func(p pair) pair {
				if p.b%2 == 0 {
					return pair{p.a, p.b / 2}
				}
				return pair{p.a, 3*p.b + 1}
			})
		}

		result := v.Complete()
		fmt.Printf("collatz trajectories over [0, %d): %d distinct (start, value) pairs in %d rounds\n", bound, result.Len(), round)
		return nil
	},
}

func init() {
	collatzCmd.Flags().IntVar(&collatzBound, "bound", 0, "exclusive upper bound for the starting values (defaults to config)")
}
