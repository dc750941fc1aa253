package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Substage is the finer-grained progress marker within the Arranging status.
// It is only meaningful while the order status is Arranging; in every other
// status the substage is SubstageNone.
//
// Substages advance monotonically:
//
//	ArrangingStarted ──> Arranged ──> SentForPackaging
type Substage int

const (
	// SubstageNone means no substage applies to the current status.
	SubstageNone Substage = iota

	// SubstageArrangingStarted marks the beginning of stock arrangement.
	SubstageArrangingStarted

	// SubstageArranged marks arrangement as finished; requires proof-of-stage media.
	SubstageArranged

	// SubstageSentForPackaging marks hand-over to the packaging team;
	// requires proof-of-stage media.
	SubstageSentForPackaging
)

func getSubstageStrings() map[Substage]string {
	return map[Substage]string{
		SubstageNone:             "None",
		SubstageArrangingStarted: "ArrangingStarted",
		SubstageArranged:         "Arranged",
		SubstageSentForPackaging: "SentForPackaging",
	}
}

// ArrangingSubstages returns the substages of the Arranging status in order.
func ArrangingSubstages() []Substage {
	return []Substage{SubstageArrangingStarted, SubstageArranged, SubstageSentForPackaging}
}

// ParseSubstage converts a stored string representation into a Substage.
// Returns an error for unrecognized values.
func ParseSubstage(s string) (Substage, error) {
	for substage, str := range getSubstageStrings() {
		if str == s {
			return substage, nil
		}
	}
	return SubstageNone, errs.NewValueIsInvalidErrorWithCause("substage", fmt.Errorf("%q is not a valid substage", s))
}

// Validate checks if the Substage value is one of the defined markers.
// SubstageNone is valid: it is the substage of every non-Arranging status.
func (s Substage) Validate() error {
	if _, ok := getSubstageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("substage", fmt.Errorf("%d is not a valid substage", s))
	}
	return nil
}

// String returns the human-readable name of the substage.
// This method implements the fmt.Stringer interface and is safe
// to call on any Substage value, including invalid ones.
func (s Substage) String() string {
	if str, ok := getSubstageStrings()[s]; ok {
		return str
	}
	return "None"
}

// requiresMedia reports whether reaching this substage requires at least one
// attached proof-of-stage media file.
func (s Substage) requiresMedia() bool {
	return s == SubstageArranged || s == SubstageSentForPackaging
}
