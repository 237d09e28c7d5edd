package model

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/annulus/geom"
)

// assertNonEmptyCandidates guards FindBestAnnulus's precondition, spec's
// documented n>=2 domain (see DESIGN.md open question (c)).
func assertNonEmptyCandidates(c []geom.Annulus) {
	assert.True(len(c) > 0, "FindBestAnnulus: no candidates recorded")
}
