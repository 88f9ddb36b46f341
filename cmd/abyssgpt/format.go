package main

import (
	"fmt"

	"github.com/rayanamir1/AbyssGPT/pkg/engine"
	"github.com/rayanamir1/AbyssGPT/pkg/validation"
)

func printResponse(resp engine.Response) {
	fmt.Printf("[%s | %s]\n", resp.Type, resp.Profile)
	fmt.Println(resp.Answer)

	if resp.Report != nil {
		fmt.Println()
		fmt.Printf("  Danger:            %6.1f\n", resp.Report.Vector.Danger)
		fmt.Printf("  Resource:          %6.1f\n", resp.Report.Vector.Resource)
		fmt.Printf("  Ecological impact: %6.1f\n", resp.Report.Vector.EcoImpact)
		fmt.Printf("  Combined (%s): %6.1f\n", resp.Report.Profile, resp.Report.Combined)
	}

	if resp.Route != nil {
		fmt.Println()
		fmt.Printf("  Steps: %d  Cost: %.2f  Worst danger: %.0f  Length: %.2f\n",
			resp.Route.Steps(), resp.Route.TotalCost, resp.Route.MaxDanger, resp.Route.GeometricLength)
		fmt.Print("  Path: ")
		for i, c := range resp.Route.Cells {
			if i > 0 {
				fmt.Print(" -> ")
			}
			fmt.Printf("(%d,%d)", c.Row, c.Col)
		}
		fmt.Println()
	}

	if len(resp.Highlights) > 0 {
		fmt.Println()
		fmt.Printf("%-10s %10s %10s %10s %10s\n", "Cell", "Combined", "Danger", "Resource", "EcoImpact")
		for _, h := range resp.Highlights {
			fmt.Printf("(%3d,%3d)  %10.1f %10.1f %10.1f %10.1f\n",
				h.Coord.Row, h.Coord.Col, h.Combined,
				h.Vector.Danger, h.Vector.Resource, h.Vector.EcoImpact)
		}
	}
}

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Field != "" {
				fmt.Printf("    -> %s = %v\n", e.Field, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Field != "" {
				fmt.Printf("    -> %s = %v\n", w.Field, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}
