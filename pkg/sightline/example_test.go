package sightline_test

import (
	"fmt"

	"github.com/matzehuels/sightline/pkg/sightline"
)

func ExampleAnalyze() {
	rows := []sightline.SeatingRow{
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
		{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: 0},
	}

	results, err := sightline.Analyze(rows, sightline.DefaultScreen())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, r := range results {
		fmt.Printf("row %d: VVA %.1f° HVA %.1f° %s\n",
			r.RowID, r.VerticalViewingAngle, r.HorizontalViewingAngle, r.OverallStatus)
		for _, n := range r.Notes {
			fmt.Println("  -", n)
		}
	}
	// Output:
	// row 1: VVA 6.5° HVA 53.1° acceptable
	//   - horizontal angle 53.1° exceeds optimal maximum of 50° (seat too close)
	// row 2: VVA 2.0° HVA 39.3° optimal
}

func ExampleVerticalAngle() {
	// Eye at 44 in, screen center at 57.75 in, 10 ft away.
	fmt.Printf("%.2f\n", sightline.VerticalAngle(57.75, 44, 120))
	// Output: 6.54
}

func ExampleParseStatus() {
	s, err := sightline.ParseStatus(" Marginal ")
	fmt.Println(s, err)
	// Output: marginal <nil>
}
