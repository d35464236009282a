package arimasim

import (
	"github.com/arimalab/go-arimasim/cls"
	"github.com/arimalab/go-arimasim/mixture"
)

// EstimationReport pairs one estimation with the order it was run for and
// optionally the ground truth model that generated the series.
type EstimationReport struct {
	Order    mixture.ModelOrder  `json:"order"`
	Estimate cls.Result          `json:"estimate"`
	Truth    *mixture.Descriptor `json:"truth,omitempty"`
}
