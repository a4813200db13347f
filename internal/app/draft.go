package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/idilsaglam/items/internal/model"
)

// DraftDescription is the fixed description of generated drafts.
const DraftDescription = "Created from terminal client"

// DraftSource produces the draft sent by CreateRandomItem.
type DraftSource func() model.Draft

// NewDraftSource builds drafts named after now() in unix millis, priced
// at rnd()*100. rnd must return values in [0, 1).
func NewDraftSource(now func() time.Time, rnd func() float64) DraftSource {
	return func() model.Draft {
		return model.Draft{
			Name:        fmt.Sprintf("Item %d", now().UnixMilli()),
			Description: DraftDescription,
			Price:       rnd() * 100,
			IsAvailable: true,
		}
	}
}

// RandomDraft is the default source: wall clock and math/rand.
var RandomDraft = NewDraftSource(time.Now, rand.Float64)
