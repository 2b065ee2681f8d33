// CLI tool to compute macro targets and generate week plans offline.
// Usage: go run ./cmd/planner targets --age 30 --height 180 --weight 80 --goal lean
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"lg/fitpulse-api/internal/config"
	"lg/fitpulse-api/internal/nutrition"
)

type runContext struct {
	planner *nutrition.Planner
	out     io.Writer
}

type ProfileFlags struct {
	Age    int     `help:"Age in years." required:""`
	Height float64 `help:"Height in cm." required:""`
	Weight float64 `help:"Weight in kg." required:""`
	Gender string  `help:"male or female." default:"male"`
	Goal   string  `help:"lean, bulk, recomposition, maintain or performance." required:""`
}

func (f ProfileFlags) profile() nutrition.Profile {
	return nutrition.Profile{
		Age:      f.Age,
		HeightCM: f.Height,
		WeightKG: f.Weight,
		Gender:   nutrition.ParseGender(f.Gender),
		Goal:     f.Goal,
	}
}

type TargetsCmd struct {
	ProfileFlags `embed:""`
}

func (c *TargetsCmd) Run(ctx *runContext) error {
	targets, ok := ctx.planner.Targets(c.profile())
	if !ok {
		return fmt.Errorf("no targets: age, height, weight and goal must be set")
	}
	return writeJSON(ctx.out, targets)
}

type PlanCmd struct {
	ProfileFlags `embed:""`
}

func (c *PlanCmd) Run(ctx *runContext) error {
	targets, ok := ctx.planner.Targets(c.profile())
	if !ok {
		return fmt.Errorf("no targets: age, height, weight and goal must be set")
	}
	plan := ctx.planner.GenerateWeekPlan(targets.ProteinGrams, targets.CarbGrams, targets.FatGrams)
	return writeJSON(ctx.out, struct {
		Targets nutrition.MacroTargets `json:"targets"`
		Plan    nutrition.WeekPlan     `json:"plan"`
	}{targets, plan})
}

type MacrosCmd struct {
	Protein int `help:"Daily protein grams." required:""`
	Carbs   int `help:"Daily carb grams." required:""`
	Fat     int `help:"Daily fat grams." required:""`
}

func (c *MacrosCmd) Run(ctx *runContext) error {
	if c.Protein < 0 || c.Carbs < 0 || c.Fat < 0 {
		return fmt.Errorf("macro grams must not be negative")
	}
	return writeJSON(ctx.out, ctx.planner.GenerateWeekPlan(c.Protein, c.Carbs, c.Fat))
}

type FoodsCmd struct {
	Category string `arg:"" optional:"" help:"Only list this category."`
}

func (c *FoodsCmd) Run(ctx *runContext) error {
	categories := nutrition.Categories()
	if c.Category != "" {
		cat, ok := nutrition.ParseCategory(c.Category)
		if !ok {
			return fmt.Errorf("unknown category %q", c.Category)
		}
		categories = []nutrition.Category{cat}
	}
	out := make(map[string][]nutrition.Food, len(categories))
	for _, cat := range categories {
		out[cat.String()] = nutrition.Foods(cat)
	}
	return writeJSON(ctx.out, out)
}

type CLI struct {
	Config string `help:"Planner TOML file overriding meal shares, portions and calorie bands." type:"existingfile"`
	Seed   uint64 `help:"Seed for food selection; 0 picks a random one."`

	Targets TargetsCmd `cmd:"" help:"Compute daily calorie and macro targets."`
	Plan    PlanCmd    `cmd:"" help:"Generate a 7-day meal plan from a profile."`
	Macros  MacrosCmd  `cmd:"" help:"Generate a 7-day meal plan from explicit daily macros."`
	Foods   FoodsCmd   `cmd:"" help:"List the food catalog."`
}

// newRunContext builds the planner the subcommands share.
func (c *CLI) newRunContext(out io.Writer) (*runContext, error) {
	settings := nutrition.DefaultSettings()
	if c.Config != "" {
		var err error
		if settings, err = config.LoadPlannerSettings(c.Config); err != nil {
			return nil, err
		}
	}

	var rng nutrition.Rand
	if c.Seed != 0 {
		rng = nutrition.NewRand(c.Seed)
	}
	planner, err := nutrition.NewPlanner(settings, rng)
	if err != nil {
		return nil, err
	}
	return &runContext{planner: planner, out: out}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("planner"),
		kong.Description("Offline macro targets and meal plans."),
		kong.UsageOnError(),
	)

	runCtx, err := cli.newRunContext(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := ctx.Run(runCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
