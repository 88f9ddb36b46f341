// Package engine dispatches classified queries to the scoring,
// pathfinding, survey, and explanation layers and assembles one unified
// response payload for the CLI and HTTP server.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rayanamir1/AbyssGPT/pkg/explain"
	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/nav"
	"github.com/rayanamir1/AbyssGPT/pkg/query"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
	"github.com/rayanamir1/AbyssGPT/pkg/survey"
)

// DefaultHighlights is the number of hotspot cells surfaced by
// grid-wide analyses.
const DefaultHighlights = 5

// Engine binds the loaded dataset and scoring model to the query
// pipeline. It holds no per-query state; concurrent Handle calls are
// safe.
type Engine struct {
	repo   grid.Repository
	model  *score.Model
	nav    nav.Options
	topN   int
	logger *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithNavOptions overrides graph connectivity and edge-cost tuning.
func WithNavOptions(o nav.Options) Option {
	return func(e *Engine) { e.nav = o }
}

// WithHighlights sets how many hotspot cells analyses return.
func WithHighlights(n int) Option {
	return func(e *Engine) { e.topN = n }
}

// WithLogger attaches a logger for query tracing.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an engine over a repository and scoring model.
func New(repo grid.Repository, model *score.Model, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		model:  model,
		nav:    nav.DefaultOptions(),
		topN:   DefaultHighlights,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Response is the unified payload returned for every query. Fields not
// relevant to the query type stay empty.
type Response struct {
	Type       query.Type          `json:"type"`
	Profile    score.Profile       `json:"profile"`
	Answer     string              `json:"answer"`
	Report     *explain.CellReport `json:"report,omitempty"`
	Route      *nav.Route          `json:"route,omitempty"`
	Heatmap    [][]float64         `json:"heatmap,omitempty"`
	Highlights []survey.CellScore  `json:"highlights,omitempty"`
}

// Handle classifies free text and executes the resulting request.
func (e *Engine) Handle(ctx context.Context, text string) Response {
	req := query.Classify(text)
	e.logger.Info("query classified",
		zap.String("text", text),
		zap.String("type", string(req.Type)),
		zap.String("profile", string(req.Profile)),
		zap.Int("coords", len(req.Coords)))
	return e.HandleRequest(ctx, req)
}

// HandleRequest executes a structured request. Invalid input and
// unreachable targets produce explanatory answers, never errors: a
// failed query must not take down a session serving other queries.
func (e *Engine) HandleRequest(ctx context.Context, req query.Request) Response {
	resp := Response{Type: req.Type, Profile: req.Profile}

	if err := req.Validate(); err != nil {
		resp.Answer = fmt.Sprintf("Cannot run this query: %v. Coordinates look like (row, col).", err)
		return resp
	}

	switch req.Type {
	case query.TypeRoute:
		e.handleRoute(ctx, req, &resp)
	case query.TypeMining, query.TypeConservation:
		e.handleSurvey(req, &resp)
	case query.TypeExplain, query.TypeBiodiversity, query.TypePOI:
		rep := explain.Describe(e.repo, e.model, req.Coords[0], req.Profile)
		resp.Report = &rep
		resp.Answer = rep.Answer
	default:
		resp.Answer = "I couldn't understand that request. Ask about routes, hazards, " +
			"resources, biodiversity, or a coordinate like (10, 12)."
	}
	return resp
}

func (e *Engine) handleRoute(ctx context.Context, req query.Request, resp *Response) {
	graph := nav.NewGraph(e.repo, e.model, req.Profile, e.nav)
	route, err := nav.NewPathfinder(graph).FindRoute(ctx, req.Coords[0], req.Coords[1])

	switch {
	case errors.Is(err, nav.ErrInvalidCoordinate):
		resp.Answer = fmt.Sprintf("Those coordinates are outside the mapped grid (%v).", err)
	case errors.Is(err, nav.ErrNoRoute):
		resp.Answer = "No viable route connects those coordinates."
	case err != nil:
		// Context cancellation is the only remaining cause.
		resp.Answer = fmt.Sprintf("Route search stopped early: %v.", err)
	default:
		resp.Route = route
		resp.Answer = fmt.Sprintf(
			"Found a %d-step route from (%d,%d) to (%d,%d) with total cost %.2f (worst danger %.0f).",
			route.Steps(), req.Coords[0].Row, req.Coords[0].Col,
			req.Coords[1].Row, req.Coords[1].Col, route.TotalCost, route.MaxDanger)
	}
}

func (e *Engine) handleSurvey(req query.Request, resp *Response) {
	resp.Heatmap = survey.Heatmap(e.repo, e.model, req.Profile)
	resp.Highlights = survey.Top(e.repo, e.model, req.Profile, e.topN)

	if len(req.Coords) == 1 {
		rep := explain.Describe(e.repo, e.model, req.Coords[0], req.Profile)
		resp.Report = &rep
	}

	if req.Type == query.TypeMining {
		resp.Answer = fmt.Sprintf(
			"Top %d mining zones balancing yield against ecological impact.", len(resp.Highlights))
	} else {
		resp.Answer = fmt.Sprintf(
			"Top %d ecologically sensitive zones recommended for protection.", len(resp.Highlights))
	}
}
