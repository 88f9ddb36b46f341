package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/rayanamir1/AbyssGPT/internal/server"
	"github.com/rayanamir1/AbyssGPT/pkg/engine"
	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/query"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
	"github.com/rayanamir1/AbyssGPT/pkg/validation"
)

// loadSession loads the dataset and weight table and wires the engine.
// The combined validation report is returned so commands can surface
// warnings alongside their output.
func loadSession() (*engine.Engine, grid.Repository, *validation.Report, error) {
	cfg := score.DefaultConfig()
	if path := viper.GetString("weights"); path != "" {
		var err error
		cfg, err = score.LoadConfig(path)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	report := score.ValidateConfig(cfg)
	if !report.Valid {
		printValidationReport(report)
		return nil, nil, report, fmt.Errorf("weight table has validation errors")
	}

	repo, dataReport, err := grid.LoadDir(viper.GetString("data"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading dataset: %w", err)
	}
	report.Merge(dataReport)

	eng := engine.New(repo, score.NewModel(cfg), engine.WithLogger(logger))
	return eng, repo, report, nil
}

func runAsk(ctx context.Context, text string) error {
	eng, _, _, err := loadSession()
	if err != nil {
		return err
	}
	printResponse(eng.Handle(ctx, text))
	return nil
}

func runScore(ctx context.Context, row, col int, profile string) error {
	eng, _, _, err := loadSession()
	if err != nil {
		return err
	}
	resp := eng.HandleRequest(ctx, query.Request{
		Type:    query.TypeExplain,
		Profile: score.ParseProfile(profile),
		Coords:  []grid.Coordinate{{Row: row, Col: col}},
	})
	printResponse(resp)
	return nil
}

func runRoute(ctx context.Context, fromRow, fromCol, toRow, toCol int, profile string) error {
	eng, _, _, err := loadSession()
	if err != nil {
		return err
	}
	resp := eng.HandleRequest(ctx, query.Request{
		Type:    query.TypeRoute,
		Profile: score.ParseProfile(profile),
		Coords: []grid.Coordinate{
			{Row: fromRow, Col: fromCol},
			{Row: toRow, Col: toCol},
		},
	})
	printResponse(resp)
	return nil
}

func runHeatmap(ctx context.Context, profile string, top int) error {
	eng, _, _, err := loadSession()
	if err != nil {
		return err
	}
	p := score.ParseProfile(profile)
	typ := query.TypeMining
	if p == score.Conservation {
		typ = query.TypeConservation
	}
	resp := eng.HandleRequest(ctx, query.Request{Type: typ, Profile: p})
	if top > 0 && top < len(resp.Highlights) {
		resp.Highlights = resp.Highlights[:top]
	}
	printResponse(resp)
	return nil
}

func runValidate() error {
	_, _, report, err := loadSession()
	if err != nil {
		return err
	}
	printValidationReport(report)
	return nil
}

func runServe(port int) error {
	eng, repo, report, err := loadSession()
	if err != nil {
		return err
	}
	if len(report.Warnings) > 0 {
		printValidationReport(report)
	}
	return server.New(eng, repo, port, logger).Start()
}
