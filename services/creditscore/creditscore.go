package creditscore

import (
	"hash/fnv"
	"strings"
)

const (
	scoreFloor = 550
	scoreRange = 301 // inclusive ceiling of 850
)

// Score maps a PAN card number to a credit score in [550, 850]. The score is
// a pure function of the upper-cased PAN: the same PAN always produces the
// same score, across calls and across process restarts. Scores are never
// recomputed after submission, so the mapping must stay stable for the
// lifetime of the system.
func Score(panCard string) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(panCard)))
	return scoreFloor + int(h.Sum32()%scoreRange)
}
