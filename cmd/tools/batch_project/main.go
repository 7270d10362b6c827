package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"trade_planning/pkg/core/assumption"
	"trade_planning/pkg/core/catalog"
	"trade_planning/pkg/core/projection"
	"trade_planning/pkg/core/report"
	"trade_planning/pkg/core/scenario"
	"trade_planning/pkg/models"
)

// Plan is one scenario definition in the batch file.
type Plan struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Config      projection.Config `yaml:"config"`
}

// Batch is the plan file layout.
type Batch struct {
	Scenarios []Plan `yaml:"scenarios"`
}

func main() {
	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using environment variables")
	}

	inPath := flag.String("in", "", "Directory of YAML plan files, or a single plan file")
	catalogPath := flag.String("catalog", os.Getenv("CATALOG_PATH"), "Catalog file (default: built-in reference data)")
	assumptionsPath := flag.String("assumptions", os.Getenv("ASSUMPTIONS_PATH"), "Assumptions YAML file")
	outDir := flag.String("out", "batch_out", "Directory for briefs and the summary")
	flag.Parse()

	if *inPath == "" {
		log.Fatal("Error: -in is required")
	}

	set := assumption.Defaults()
	if *assumptionsPath != "" {
		var err error
		if set, err = assumption.Load(*assumptionsPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	cat := catalog.Default()
	if *catalogPath != "" {
		var err error
		if cat, err = catalog.LoadFile(*catalogPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	plans, err := loadPlans(*inPath)
	if err != nil {
		log.Fatalf("Error loading plans: %v", err)
	}
	fmt.Printf("Loaded %d plans from %s\n", len(plans), *inPath)

	engine := projection.NewEngine(cat)
	engine.Margin = set.MarginCalculator()
	engine.DefaultVelocity = set.DefaultVelocity

	saved, failed := runBatch(engine, plans)
	for _, f := range failed {
		fmt.Printf("  [SKIP] %s\n", f)
	}

	if err := writeOutput(*outDir, saved, cat); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
	fmt.Printf("\n=== Done: %d projected, %d skipped, output in %s ===\n", len(saved), len(failed), *outDir)
}

// loadPlans reads one plan file, or every .yaml/.yml file in a directory in
// name order.
func loadPlans(path string) ([]Plan, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return readPlanFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no plan files in %s", path)
	}

	var plans []Plan
	for _, f := range files {
		p, err := readPlanFile(f)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p...)
	}
	return plans, nil
}

func readPlanFile(path string) ([]Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var batch Batch
	if err := yaml.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return batch.Scenarios, nil
}

// runBatch projects every plan and snapshots the successful ones. Failures
// are reported, not fatal.
func runBatch(engine *projection.Engine, plans []Plan) ([]models.Scenario, []string) {
	repo := scenario.NewMemoryRepository()
	var failed []string

	for i, p := range plans {
		res, err := engine.Project(p.Config)
		if err != nil {
			failed = append(failed, fmt.Sprintf("#%d %q: %v", i+1, p.Name, err))
			continue
		}
		if _, err := scenario.Save(repo, p.Name, p.Description, p.Config, res); err != nil {
			failed = append(failed, fmt.Sprintf("#%d %q: %v", i+1, p.Name, err))
			continue
		}
		status := "OK"
		if !res.MarginCompliant {
			status = "MARGIN BELOW REQUIREMENT"
		}
		fmt.Printf("  [%s] %s: total revenue %.2f, total profit %.2f, lift %.1f%%\n",
			status, p.Name, res.TotalRevenue, res.TotalProfit, res.LiftPercentage)
	}
	return repo.List(), failed
}

func writeOutput(dir string, scenarios []models.Scenario, cat *catalog.Catalog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range scenarios {
		brief := report.ScenarioBrief(s, cat.RetailerName(s.TargetRetailerID))
		if err := os.WriteFile(filepath.Join(dir, s.ID+".md"), []byte(brief), 0o644); err != nil {
			return err
		}
	}

	summary, err := json.MarshalIndent(scenarios, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "summary.json"), summary, 0o644)
}
