package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chart-render/internal/features/chart_render"
	"chart-render/internal/plot/raster"
)

// go run etc/tools/sample_charts.go
// renders etc/examples/*.json into etc/charts/*.png
func main() {
	fmt.Println("Generating sample charts...")

	inputs, err := filepath.Glob(filepath.Join("etc", "examples", "*.json"))
	if err != nil || len(inputs) == 0 {
		fmt.Printf("No sample configurations found in etc/examples: %v\n", err)
		os.Exit(1)
	}

	rr, err := raster.New(raster.Options{})
	if err != nil {
		fmt.Printf("Error creating renderer: %v\n", err)
		os.Exit(1)
	}
	renderer := chart_render.NewRenderer(rr, os.Stdout, os.Stderr)

	failed := 0
	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".json") + ".png"
		if !renderer.Render(input, filepath.Join("etc", "charts", name)) {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("%d of %d charts failed\n", failed, len(inputs))
		os.Exit(1)
	}
	fmt.Println("Open etc/charts to see the result!")
}
