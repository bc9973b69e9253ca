package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/kevinawalsh/fixpoint/internal/people"
)

var (
	peoplePopulation int
	peopleSeed       int64
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Generate a synthetic population and find children who share a name with a parent",
	RunE: func(cmd *cobra.Command, args []string) error {
		population := peoplePopulation
		if population <= 0 {
			population = cfg.PopulationSize
		}
		seed := peopleSeed
		if seed == 0 {
			seed = cfg.RandomSeed
		}

		rng := rand.New(rand.NewSource(seed))
		pop := people.GeneratePopulation(population, rng)
		pf := people.NewParentFinder(pop)
		triples := people.GenerateTriples(pop, pf, rng)

		logger.Sugar().Debugf("generated %d people, %d triples", len(pop), len(triples))

		matches := people.Query(triples)
		fmt.Printf("population of %d: %d child/parent pairs share a name\n", population, len(matches))
		return nil
	},
}

func init() {
	peopleCmd.Flags().IntVar(&peoplePopulation, "population", 0, "number of synthetic people to generate (defaults to config)")
	peopleCmd.Flags().Int64Var(&peopleSeed, "seed", 0, "random seed for population generation (defaults to config)")
}
