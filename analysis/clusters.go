package analysis

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/genetics"
)

// Cluster is a group of agents, identified by their indices in the population.
type Cluster struct {
	Seed    int   // Index of the agent that opened the cluster
	Members []int // Indices in ascending order, Seed included
}

// Size returns the number of members.
func (c Cluster) Size() int {
	return len(c.Members)
}

// DetectClusters groups agents in a single greedy pass over pop in order.
// The first unassigned agent opens a cluster and every later unassigned agent
// whose Hamming distance to that seed is below threshold joins it.
//
// Membership is decided against the seed only, so two members may be further
// than threshold apart, and the result depends on population order.
// ConnectedClusters is the transitive alternative.
func DetectClusters(pop components.Population, threshold float64) []Cluster {
	assigned := make([]bool, len(pop))
	var clusters []Cluster

	for i := range pop {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		c := Cluster{Seed: i, Members: []int{i}}
		for j := i + 1; j < len(pop); j++ {
			if assigned[j] {
				continue
			}
			if float64(genetics.Hamming(pop[i].Genotype, pop[j].Genotype)) < threshold {
				assigned[j] = true
				c.Members = append(c.Members, j)
			}
		}
		clusters = append(clusters, c)
	}

	return clusters
}

// ConnectedClusters returns the connected components of the graph joining
// every pair of agents whose Hamming distance is below threshold. Unlike
// DetectClusters the grouping is transitive and independent of order.
// Clusters are ordered by their smallest member, which is also the Seed.
//
// Agents sharing a genotype are always connected when threshold > 0, so the
// graph is built over distinct genotypes and expanded afterwards.
func ConnectedClusters(pop components.Population, threshold float64) []Cluster {
	if len(pop) == 0 {
		return nil
	}

	// Distinct genotypes in order of first appearance, with their carriers.
	index := make(map[string]int)
	var distinct []genetics.Genotype
	var carriers [][]int
	for i := range pop {
		key := string(pop[i].Genotype)
		id, ok := index[key]
		if !ok || threshold <= 0 {
			id = len(distinct)
			index[key] = id
			distinct = append(distinct, pop[i].Genotype)
			carriers = append(carriers, nil)
		}
		carriers[id] = append(carriers[id], i)
	}

	g := simple.NewUndirectedGraph()
	for id := range distinct {
		g.AddNode(simple.Node(id))
	}
	for a := range distinct {
		for b := a + 1; b < len(distinct); b++ {
			if float64(genetics.Hamming(distinct[a], distinct[b])) < threshold {
				g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
			}
		}
	}

	comps := topo.ConnectedComponents(g)
	clusters := make([]Cluster, 0, len(comps))
	for _, nodes := range comps {
		var members []int
		for _, n := range nodes {
			members = append(members, carriers[n.ID()]...)
		}
		sort.Ints(members)
		clusters = append(clusters, Cluster{Seed: members[0], Members: members})
	}
	sort.Slice(clusters, func(a, b int) bool {
		return clusters[a].Seed < clusters[b].Seed
	})

	return clusters
}
