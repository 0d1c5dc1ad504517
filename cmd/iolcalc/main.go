// iolcalc - IOL power calculation from the command line
//
// Usage:
//   iolcalc calculate --axial-length 23.5 --k1 43.5 --k2 44.0 [options]
//   iolcalc calculate --input biometry.json --format json
//   iolcalc formulas --axial-length 27.2
//   iolcalc lenses
//   iolcalc toric --cylinder 3.0 --correction 0.5 --axis 90
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/oculab/iolcalc-api/internal/domain"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := &cli.App{
		Name:    "iolcalc",
		Usage:   "Intraocular lens power calculation from ocular biometry",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),

		Commands: []*cli.Command{
			calculateCommand(),
			formulasCommand(),
			lensesCommand(),
			toricCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CALCULATE COMMAND
// =============================================================================

// calculationInput mirrors the API request payload so a saved request body
// can be replayed through the CLI unchanged.
type calculationInput struct {
	Biometry domain.BiometryData `json:"biometry"`
	Lens     iol.ConstantsSpec   `json:"lens"`
	Patient  *domain.PatientData `json:"patient,omitempty"`
}

func calculateCommand() *cli.Command {
	return &cli.Command{
		Name:  "calculate",
		Usage: "Run the formulas on one eye's biometry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to a JSON file with biometry, lens, and patient data",
			},
			&cli.Float64Flag{
				Name:  "axial-length",
				Usage: "Axial length in mm",
			},
			&cli.Float64Flag{
				Name:  "k1",
				Usage: "Flat keratometry in D",
			},
			&cli.Float64Flag{
				Name:  "k2",
				Usage: "Steep keratometry in D",
			},
			&cli.Float64Flag{
				Name:  "acd",
				Usage: "Anterior chamber depth in mm (optional)",
			},
			&cli.Float64Flag{
				Name:  "lens-thickness",
				Usage: "Crystalline lens thickness in mm (optional)",
			},
			&cli.Float64Flag{
				Name:  "white-to-white",
				Usage: "Horizontal corneal diameter in mm (optional)",
			},
			&cli.StringFlag{
				Name:  "lens",
				Usage: "Lens model identifier from the catalog",
			},
			&cli.Float64Flag{
				Name:  "a-constant",
				Usage: "Explicit A-constant, overrides the lens model",
			},
			&cli.Float64Flag{
				Name:  "target",
				Usage: "Target postoperative refraction in D (0 = emmetropia)",
			},
			&cli.StringFlag{
				Name:  "formula",
				Usage: "Run one formula only (srkt, holladay1, haigis, barrett)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
		},
		Action: runCalculate,
	}
}

func runCalculate(c *cli.Context) error {
	input, err := buildCalculationInput(c)
	if err != nil {
		return err
	}

	svc, err := iol.NewService()
	if err != nil {
		return fmt.Errorf("failed to initialize calculation service: %w", err)
	}

	if formula := c.String("formula"); formula != "" {
		result, err := svc.CalculateFormula(formula, input.Biometry, input.Lens, input.Patient)
		if err != nil {
			return fmt.Errorf("calculation failed: %w", err)
		}
		if c.String("format") == "json" {
			return outputJSON(result)
		}
		outputFormulaTable(result)
		return nil
	}

	result, err := svc.Calculate(input.Biometry, input.Lens, input.Patient)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if c.String("format") == "json" {
		return outputJSON(result)
	}
	outputMultiFormulaTable(result)
	return nil
}

func buildCalculationInput(c *cli.Context) (calculationInput, error) {
	var input calculationInput

	if path := c.String("input"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("failed to read input file: %w", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("failed to parse input file: %w", err)
		}
	}

	// Flags override file values.
	if c.IsSet("axial-length") {
		input.Biometry.AxialLength = c.Float64("axial-length")
	}
	if c.IsSet("k1") {
		input.Biometry.K1 = c.Float64("k1")
	}
	if c.IsSet("k2") {
		input.Biometry.K2 = c.Float64("k2")
	}
	if c.IsSet("acd") {
		acd := c.Float64("acd")
		input.Biometry.ACD = &acd
	}
	if c.IsSet("lens-thickness") {
		lt := c.Float64("lens-thickness")
		input.Biometry.LensThickness = &lt
	}
	if c.IsSet("white-to-white") {
		wtw := c.Float64("white-to-white")
		input.Biometry.WhiteToWhite = &wtw
	}
	if c.IsSet("lens") {
		input.Lens.Lens = c.String("lens")
	}
	if c.IsSet("a-constant") {
		input.Lens.Custom = &iol.Constants{AConstant: c.Float64("a-constant")}
	}
	if c.IsSet("target") {
		if input.Patient == nil {
			input.Patient = &domain.PatientData{}
		}
		input.Patient.TargetRefraction = c.Float64("target")
	}

	return input, nil
}

// =============================================================================
// OUTPUT FORMATTERS
// =============================================================================

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputFormulaTable(result domain.FormulaResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Formula\tPower (D)\tELP (mm)\tConfidence\n")
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n",
		result.Formula, result.RecommendedPower, result.ELP, result.Confidence)
	w.Flush()

	printWarnings(result.Warnings)

	if len(result.PowerOptions) > 0 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Power (D)\tExpected refraction (D)\tDeviation (D)\n")
		for _, opt := range result.PowerOptions {
			fmt.Fprintf(w, "%.2f\t%.2f\t%.2f\n", opt.Power, opt.ExpectedRefraction, opt.Deviation)
		}
		w.Flush()
	}
}

func outputMultiFormulaTable(result domain.MultiFormulaResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Formula\tPower (D)\tELP (mm)\tConfidence\tWarnings\n")
	for _, r := range result.Results() {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\t%d\n",
			r.Formula, r.RecommendedPower, r.ELP, r.Confidence, len(r.Warnings))
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Optimized power: %.2f D (agreement %.0f%%, from %s)\n",
		result.Optimized.Power,
		result.Optimized.AgreementScore,
		strings.Join(result.Optimized.Formulas, ", "))

	for _, r := range result.Results() {
		printWarnings(r.Warnings)
	}

	if len(result.Recommendations) > 0 {
		fmt.Println()
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func printWarnings(warnings []domain.Warning) {
	for _, warning := range warnings {
		fmt.Printf("  ! [%s] %s\n", warning.Code, warning.Message)
	}
}

// =============================================================================
// FORMULAS COMMAND
// =============================================================================

func formulasCommand() *cli.Command {
	return &cli.Command{
		Name:  "formulas",
		Usage: "Show the recommended formulas for an axial length",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "axial-length",
				Usage:    "Axial length in mm",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "post-refractive",
				Usage: "Prior corneal refractive surgery (LASIK/PRK)",
			},
		},
		Action: func(c *cli.Context) error {
			formulas := iol.RecommendedFormulas(c.Float64("axial-length"), c.Bool("post-refractive"))
			for i, formula := range formulas {
				fmt.Printf("%d. %s\n", i+1, formula)
			}
			return nil
		},
	}
}

// =============================================================================
// LENSES COMMAND
// =============================================================================

func lensesCommand() *cli.Command {
	return &cli.Command{
		Name:  "lenses",
		Usage: "List the lens constants catalog",
		Action: func(c *cli.Context) error {
			svc, err := iol.NewService()
			if err != nil {
				return fmt.Errorf("failed to initialize calculation service: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Model\tManufacturer\tA-constant\tHaigis a0\ta1\ta2\n")
			for _, lens := range svc.Lenses() {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3f\t%.3f\t%.3f\n",
					lens.Model, lens.Manufacturer,
					lens.Constants.AConstant,
					lens.Constants.HaigisA0,
					lens.Constants.HaigisA1,
					lens.Constants.HaigisA2)
			}
			return w.Flush()
		},
	}
}

// =============================================================================
// TORIC COMMAND
// =============================================================================

func toricCommand() *cli.Command {
	return &cli.Command{
		Name:  "toric",
		Usage: "Convert corneal astigmatism to the cylinder at the IOL plane",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "cylinder",
				Usage:    "Corneal astigmatism magnitude in D",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "correction",
				Usage: "Incision-induced correction allowance in D",
			},
			&cli.IntFlag{
				Name:     "axis",
				Usage:    "Steep meridian in degrees",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			result := iol.ToricCylinder(c.Float64("cylinder"), c.Float64("correction"), c.Int("axis"))
			fmt.Printf("IOL cylinder: %.2f D at %d°\n", result.Cylinder, result.Axis)
			return nil
		},
	}
}
