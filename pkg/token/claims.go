package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/buger/jsonparser"
)

// TimeClaims are the numeric date claims annotated above the payload, in
// display order.
var TimeClaims = []string{"iat", "exp", "nbf"}

// Annotation is a human-readable timestamp derived from a numeric date claim.
type Annotation struct {
	Claim string    `json:"claim"`
	Time  time.Time `json:"time"`
}

// String renders the annotation line body, e.g. " iat : 2023-11-14T22:13:20Z ".
func (a Annotation) String() string {
	return fmt.Sprintf(" %s : %s ", a.Claim, a.Time.UTC().Format(time.RFC3339))
}

// Annotations returns one annotation per numeric top-level date claim in
// payload. Fractional seconds are truncated; non-numeric claims are skipped.
func Annotations(payload []byte) []Annotation {
	var out []Annotation
	for _, claim := range TimeClaims {
		value, kind, _, err := jsonparser.Get(payload, claim)
		if err != nil || kind != jsonparser.Number {
			continue
		}
		secs, err := strconv.ParseFloat(string(value), 64)
		if err != nil {
			continue
		}
		out = append(out, Annotation{Claim: claim, Time: time.Unix(int64(secs), 0).UTC()})
	}
	return out
}
