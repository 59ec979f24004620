package analysis

import (
	"math"
	"reflect"
	"testing"

	"github.com/akotu235/species-formation-simulation/components"
	"github.com/akotu235/species-formation-simulation/config"
	"github.com/akotu235/species-formation-simulation/genetics"
	"github.com/akotu235/species-formation-simulation/systems"
)

func agent(x, y int, genes ...uint8) components.Agent {
	return components.Agent{X: x, Y: y, Genotype: genetics.Genotype(genes)}
}

func barrier(t *testing.T, kind config.BarrierType, index int) *systems.Barrier {
	t.Helper()
	b, err := systems.NewBarrier(kind, 10, 10, index)
	if err != nil {
		t.Fatalf("NewBarrier: %v", err)
	}
	return b
}

func TestPartitionVertical(t *testing.T) {
	pop := components.Population{
		agent(2, 0, 0),
		agent(7, 3, 1),
		agent(5, 9, 2), // on the barrier column: right side
		agent(4, 4, 0),
	}
	parts := Partition(pop, barrier(t, config.BarrierVertical, 5))

	if len(parts) != 2 {
		t.Fatalf("got %d sub-populations, want 2", len(parts))
	}
	if len(parts[0]) != 2 || parts[0][0].X != 2 || parts[0][1].X != 4 {
		t.Errorf("left = %+v", parts[0])
	}
	if len(parts[1]) != 2 || parts[1][0].X != 7 || parts[1][1].X != 5 {
		t.Errorf("right = %+v", parts[1])
	}
}

func TestPartitionHorizontal(t *testing.T) {
	pop := components.Population{agent(0, 1, 0), agent(0, 6, 1), agent(9, 2, 2)}
	parts := Partition(pop, barrier(t, config.BarrierHorizontal, 5))

	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 1 {
		t.Fatalf("top/bottom sizes wrong: %+v", parts)
	}
	if parts[1][0].Y != 6 {
		t.Errorf("bottom = %+v", parts[1])
	}
}

func TestPartitionOmitsEmptySide(t *testing.T) {
	pop := components.Population{agent(1, 1, 0), agent(2, 2, 1)}
	parts := Partition(pop, barrier(t, config.BarrierVertical, 5))
	if len(parts) != 1 || len(parts[0]) != 2 {
		t.Errorf("expected single left sub-population, got %+v", parts)
	}
}

func TestPartitionWithoutBarrier(t *testing.T) {
	pop := components.Population{agent(1, 1, 0), agent(8, 8, 1)}

	parts := Partition(pop, barrier(t, config.BarrierNone, 0))
	if len(parts) != 1 || len(parts[0]) != 2 {
		t.Errorf("none barrier: got %+v", parts)
	}
	if parts := Partition(pop, nil); len(parts) != 1 {
		t.Errorf("nil divider: got %d sub-populations", len(parts))
	}
	if parts := Partition(nil, nil); len(parts) != 0 {
		t.Errorf("empty population: got %d sub-populations", len(parts))
	}

	var unset *systems.Barrier
	if parts := Partition(pop, unset); len(parts) != 1 || len(parts[0]) != 2 {
		t.Errorf("nil barrier: got %+v", parts)
	}
	if before, after := CountSides(pop, unset); before != 2 || after != 0 {
		t.Errorf("nil barrier sides = %d/%d, want 2/0", before, after)
	}
}

func TestCountSides(t *testing.T) {
	pop := components.Population{agent(0, 0, 0), agent(5, 0, 0), agent(9, 0, 0)}
	before, after := CountSides(pop, barrier(t, config.BarrierVertical, 5))
	if before != 1 || after != 2 {
		t.Errorf("CountSides = %d, %d; want 1, 2", before, after)
	}
}

func TestPairwiseDivergence(t *testing.T) {
	low := components.Population{agent(0, 0, 0, 0), agent(0, 0, 0, 0)}
	high := components.Population{agent(0, 0, 2, 2)}
	mid := components.Population{agent(0, 0, 1, 1), agent(0, 0, 1, 1)}

	tests := []struct {
		name    string
		subpops []components.Population
		want    float64
	}{
		{"none", nil, 0},
		{"single", []components.Population{low}, 0},
		{"identical", []components.Population{low, low}, 0},
		{"two", []components.Population{low, high}, math.Sqrt(8)},
		{"empty skipped", []components.Population{low, {}, high}, math.Sqrt(8)},
		// pairs: low-high √8, low-mid √2, high-mid √2
		{"three", []components.Population{low, high, mid}, (math.Sqrt(8) + 2*math.Sqrt(2)) / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PairwiseDivergence(tt.subpops)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("PairwiseDivergence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPairwiseDivergenceSymmetric(t *testing.T) {
	a := components.Population{agent(0, 0, 0, 1, 2), agent(0, 0, 1, 1, 2)}
	b := components.Population{agent(0, 0, 2, 0, 0)}
	ab := PairwiseDivergence([]components.Population{a, b})
	ba := PairwiseDivergence([]components.Population{b, a})
	if ab != ba {
		t.Errorf("divergence not symmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("expected positive divergence, got %v", ab)
	}
}

func TestDiversity(t *testing.T) {
	pop := components.Population{agent(0, 0, 0, 0), agent(0, 0, 1, 0)}
	if got := Diversity(pop); got != 0.5 {
		t.Errorf("Diversity = %v, want 0.5", got)
	}
	if got := Diversity(pop[:1]); got != 0 {
		t.Errorf("Diversity of one agent = %v, want 0", got)
	}
}

// chain has pairwise distances a-b 1, b-c 1, a-c 2.
func chain() components.Population {
	return components.Population{
		agent(0, 0, 0, 0, 0, 0),
		agent(0, 0, 1, 0, 0, 0),
		agent(0, 0, 1, 1, 0, 0),
	}
}

func TestDetectClustersIsGreedy(t *testing.T) {
	got := DetectClusters(chain(), 2)
	want := []Cluster{
		{Seed: 0, Members: []int{0, 1}},
		{Seed: 2, Members: []int{2}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectClusters = %+v, want %+v", got, want)
	}
}

func TestDetectClustersThresholds(t *testing.T) {
	pop := chain()
	if got := DetectClusters(pop, 0); len(got) != 3 {
		t.Errorf("threshold 0: %d clusters, want 3", len(got))
	}
	if got := DetectClusters(pop, 3); len(got) != 1 || got[0].Size() != 3 {
		t.Errorf("threshold 3: %+v, want one cluster of 3", got)
	}
	if got := DetectClusters(nil, 2); len(got) != 0 {
		t.Errorf("empty population: %+v", got)
	}
}

func TestDetectClustersDependsOnOrder(t *testing.T) {
	pop := chain()
	reordered := components.Population{pop[1], pop[0], pop[2]}
	if got := DetectClusters(reordered, 2); len(got) != 1 {
		t.Errorf("middle agent first should gather all three, got %+v", got)
	}
}

func TestConnectedClustersIsTransitive(t *testing.T) {
	got := ConnectedClusters(chain(), 2)
	want := []Cluster{{Seed: 0, Members: []int{0, 1, 2}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectedClusters = %+v, want %+v", got, want)
	}
}

func TestConnectedClustersSeparate(t *testing.T) {
	pop := components.Population{
		agent(0, 0, 2, 2, 2),
		agent(0, 0, 0, 0, 0),
		agent(0, 0, 2, 2, 1),
		agent(0, 0, 0, 0, 1),
	}
	got := ConnectedClusters(pop, 2)
	want := []Cluster{
		{Seed: 0, Members: []int{0, 2}},
		{Seed: 1, Members: []int{1, 3}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectedClusters = %+v, want %+v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	left := components.Population{agent(0, 0, 0, 0), agent(1, 0, 0, 0)}
	right := components.Population{agent(9, 0, 2, 2)}

	s := Summarize([]components.Population{left, right}, 1)
	if s.NumPopulations != 2 || s.TotalSize != 3 {
		t.Errorf("summary counts = %+v", s)
	}
	if !s.Speciated {
		t.Errorf("divergence %v should be reported as speciated", s.Divergence)
	}
	if s.Clusters != 2 || s.LinkedClusters != 2 {
		t.Errorf("clusters = %d/%d, want 2/2", s.Clusters, s.LinkedClusters)
	}

	empty := Summarize(nil, 2)
	if empty.Speciated || empty.Divergence != 0 || empty.Clusters != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestSpeciated(t *testing.T) {
	if Speciated(SpeciationThreshold) {
		t.Error("threshold itself is not speciation")
	}
	if !Speciated(SpeciationThreshold + 0.01) {
		t.Error("above threshold should be speciation")
	}
}
