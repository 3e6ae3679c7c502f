package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/huey/internal/batch"
	"github.com/ironsheep/huey/internal/imaging"
	"github.com/ironsheep/huey/internal/layout"
	"github.com/ironsheep/huey/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	// Configure logging to stderr (stdout is for MCP protocol and reports)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("HUEY_LOG_LEVEL") == "debug"

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("huey %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)

	case "--help", "-h", "help":
		printUsage()

	case "palette":
		p := imaging.DefaultPalette()
		if len(os.Args) > 2 && os.Args[2] == "lower" {
			p = p.Lowercase()
		}
		for _, adj := range p {
			fmt.Printf("%-8s hue %3.0f  saturation %.2f  brightness %+d%%\n",
				adj.Name, adj.Hue, adj.Saturation, adj.Brightness)
		}

	case "generate", "flat":
		if len(os.Args) != 4 {
			log.Fatalf("usage: huey %s <input> <output>", os.Args[1])
		}
		l := layout.Layout(layout.Tree{})
		if os.Args[1] == "flat" {
			l = layout.Flat{}
		}
		if err := runBatch(l, os.Args[2], os.Args[3], debug); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "serve":
		if debug {
			log.Printf("huey MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		}
		srv := server.New(server.WithVersion(Version), server.WithVerbose(debug))
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	default:
		fmt.Fprintf(os.Stderr, "huey: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func runBatch(l layout.Layout, input, output string, debug bool) error {
	companions, set := os.LookupEnv("HUEY_COMPANIONS")
	r := &batch.Runner{
		Layout:     l,
		Palette:    imaging.DefaultPalette(),
		Sink:       batch.NewDirSink(output),
		Companions: companionsFor(l, companions, set),
		Describe:   envBool(os.Getenv("HUEY_DESCRIBE")),
		Verbose:    debug,
	}

	report, err := r.Run(input)
	if report != nil {
		printReport(report)
	}
	return err
}

func printReport(report *batch.Report) {
	for _, out := range report.Outputs {
		if out.Dominant != "" {
			fmt.Printf("%s  %s\n", out.Dominant, out.Path)
		}
	}
	for _, s := range report.Skipped {
		fmt.Printf("skipped %s: %s\n", s.Path, s.Reason)
	}
	fmt.Printf("%d sources, %d variants, %d skipped (%s layout)\n",
		report.Sources, report.Variants(), len(report.Skipped), report.Layout)
}

// companionsFor picks the companion files for a run. An unset
// HUEY_COMPANIONS means the default prefabs for layouts with per-variant
// folders; a set but empty one means none.
func companionsFor(l layout.Layout, value string, set bool) []string {
	if !set {
		if l.PerVariantDir() {
			return batch.DefaultCompanions()
		}
		return nil
	}
	return splitList(value)
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func envBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func printUsage() {
	fmt.Println("huey - recolor garment sprites into a fixed color palette")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  huey generate <input> <output>   Recolor <Category>/<Item>/<name>.png sprites")
	fmt.Println("                                   under Shirts and Pants into")
	fmt.Println("                                   <Category>/<Item>/<name>_<Color>/Shirt.png|Pants.png")
	fmt.Println("  huey flat <input> <output>       Recolor top-level PNGs into <name>_<color>.png")
	fmt.Println("  huey palette [lower]             Print the palette")
	fmt.Println("  huey serve                       Run the MCP server on stdin/stdout")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("An overlay.png next to a sprite is layered on top of every variant.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  HUEY_LOG_LEVEL=debug                  Enable debug logging")
	fmt.Println("  HUEY_COMPANIONS=Item.prefab,...       Files copied into every variant folder")
	fmt.Println("                                        (default: Animations.prefab,")
	fmt.Println("                                        Character_Mesh_3P_Override_0.prefab, Item.prefab)")
	fmt.Println("  HUEY_DESCRIBE=1                       Print each variant's dominant color")
}
