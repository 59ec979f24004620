package components

import "github.com/akotu235/species-formation-simulation/genetics"

// Genome holds an entity's genotype. The slice is owned by the entity:
// offspring always receive a fresh copy.
type Genome struct {
	Genotype genetics.Genotype
}

// Birth records the generation an entity was created in (0 for founders).
type Birth struct {
	Generation int
}
