// Package query classifies free-form text into structured spatial
// requests: a query type, an objective profile, and any coordinates
// mentioned. Classification is a pure rule-based function over token
// patterns; there is no model and no state.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

// Type is the tagged variant a classified query resolves to.
type Type string

const (
	TypeExplain      Type = "explain"
	TypeRoute        Type = "route"
	TypeMining       Type = "mining"
	TypeConservation Type = "conservation"
	TypeBiodiversity Type = "biodiversity"
	TypePOI          Type = "poi"
	TypeUnknown      Type = "unknown"
)

// Request is the structured form of a user query, handed to the engine.
type Request struct {
	Type    Type              `json:"type"`
	Profile score.Profile     `json:"profile"`
	Coords  []grid.Coordinate `json:"coords,omitempty"`
}

var coordPattern = regexp.MustCompile(`\(?\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)?`)

// ExtractCoordinates pulls every "(row, col)" pair out of text, in
// order of appearance.
func ExtractCoordinates(text string) []grid.Coordinate {
	var out []grid.Coordinate
	for _, m := range coordPattern.FindAllStringSubmatch(text, -1) {
		row, err1 := strconv.Atoi(m[1])
		col, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, grid.Coordinate{Row: row, Col: col})
	}
	return out
}

// rule maps trigger tokens to a classification. Rules are evaluated in
// order; the first match wins, so routing outranks the mining keyword
// in "safest route to the mining site".
type rule struct {
	tokens  []string
	typ     Type
	profile score.Profile
}

var rules = []rule{
	{[]string{"route", "path", "navigate", "travel"}, TypeRoute, score.SafeRoute},
	{[]string{"mine", "mining", "resource", "valuable", "rich"}, TypeMining, score.Mining},
	{[]string{"conserve", "protect", "sensitive", "fragile", "environment"}, TypeConservation, score.Conservation},
	{[]string{"hazard", "danger", "risky", "volcano", "vent"}, TypeExplain, score.SafeRoute},
	{[]string{"life", "species", "biodiversity", "fish", "ecosystem"}, TypeBiodiversity, score.Balanced},
	{[]string{"poi", "point of interest", "landmark", "station", "base"}, TypePOI, score.Balanced},
	{[]string{"explain", "describe", "what is here", "what's here"}, TypeExplain, score.Balanced},
}

// Classify maps free text to a Request. A query that matches no rule
// but names a coordinate becomes an Explain lookup; anything else is
// TypeUnknown.
func Classify(text string) Request {
	q := strings.ToLower(text)
	coords := ExtractCoordinates(q)

	for _, r := range rules {
		if !matchesAny(q, r.tokens) {
			continue
		}
		req := Request{Type: r.typ, Profile: r.profile, Coords: coords}
		if r.typ == TypeRoute {
			// "fastest route" still routes, but trades pure safety for
			// the balanced cost surface.
			if strings.Contains(q, "fast") || strings.Contains(q, "shortest") {
				req.Profile = score.Balanced
			}
		}
		return req
	}

	if len(coords) > 0 {
		return Request{Type: TypeExplain, Profile: score.Balanced, Coords: coords}
	}
	return Request{Type: TypeUnknown, Profile: score.Balanced}
}

func matchesAny(q string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// Validate checks the coordinate arity contract for a request: route
// queries need exactly two coordinates, cell lookups need one, and the
// grid-wide analyses (mining, conservation) accept zero or one.
func (r Request) Validate() error {
	switch r.Type {
	case TypeRoute:
		if len(r.Coords) != 2 {
			return fmt.Errorf("route queries need start and end coordinates, got %d", len(r.Coords))
		}
	case TypeExplain, TypeBiodiversity, TypePOI:
		if len(r.Coords) != 1 {
			return fmt.Errorf("%s queries need exactly one coordinate, got %d", r.Type, len(r.Coords))
		}
	case TypeMining, TypeConservation:
		if len(r.Coords) > 1 {
			return fmt.Errorf("%s queries take at most one coordinate, got %d", r.Type, len(r.Coords))
		}
	}
	return nil
}
