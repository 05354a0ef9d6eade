package scoring

import (
	"fmt"

	"github.com/Ramsey-B/fern/pkg/models"
)

// maxCriterionShare caps any single criterion at 40% of the total weight so
// one strong match cannot masquerade as a full match.
const maxCriterionShare = 0.40

// WeightTable holds the per-criterion weights. Weights are data: tenants can
// store their own profiles, and the defaults apply when none exists.
type WeightTable struct {
	Sector   float64
	Stage    float64
	Location float64
	Amount   float64
}

// DefaultWeights returns the compiled-in weight table.
func DefaultWeights() WeightTable {
	return WeightTable{
		Sector:   35,
		Stage:    30,
		Location: 20,
		Amount:   15,
	}
}

// Total returns the maximum possible weighted sum.
func (w WeightTable) Total() float64 {
	return w.Sector + w.Stage + w.Location + w.Amount
}

// Validate checks that every weight is positive and none exceeds the single
// criterion cap.
func (w WeightTable) Validate() error {
	total := w.Total()
	if total <= 0 {
		return fmt.Errorf("weight total must be positive")
	}
	for _, c := range []struct {
		name   string
		weight float64
	}{
		{"sector", w.Sector},
		{"stage", w.Stage},
		{"location", w.Location},
		{"amount", w.Amount},
	} {
		if c.weight <= 0 {
			return fmt.Errorf("%s weight must be positive", c.name)
		}
		if c.weight/total > maxCriterionShare {
			return fmt.Errorf("%s weight exceeds %d%% of total", c.name, int(maxCriterionShare*100))
		}
	}
	return nil
}

// FromProfile converts a stored weight profile into a weight table.
func FromProfile(p *models.WeightProfile) WeightTable {
	return WeightTable{
		Sector:   p.SectorWeight,
		Stage:    p.StageWeight,
		Location: p.LocationWeight,
		Amount:   p.AmountWeight,
	}
}
