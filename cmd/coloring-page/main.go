package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/coloring-page-mcp/internal/config"
	"github.com/ironsheep/coloring-page-mcp/internal/imaging"
	"github.com/ironsheep/coloring-page-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("coloring-page-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		case "convert":
			if err := runConvert(os.Args[2:], os.Stdout, os.Stderr); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					return
				}
				fmt.Fprintf(os.Stderr, "convert: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Coloring Page MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Debounce %v, max dimension %d, output dir %s", cfg.Debounce, cfg.MaxDimension, cfg.OutputDir)
	}

	server.Version = Version
	srv := server.New(cfg)
	defer srv.Close()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "coloring-page-mcp - turn photos into coloring pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  coloring-page [options]            Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  coloring-page convert [flags] IN   Convert one photo and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  COLORING_PAGE_LOG_LEVEL=debug      Enable debug logging")
	fmt.Fprintln(w, "  COLORING_PAGE_DEBOUNCE=150ms       Quiet period before re-rendering")
	fmt.Fprintln(w, "  COLORING_PAGE_MAX_DIMENSION=0      Downsize larger photos (0 = off)")
	fmt.Fprintln(w, "  COLORING_PAGE_OUTPUT_DIR=.         Default export directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client (e.g., Claude Desktop).")
}

// runConvert implements the convert subcommand.
func runConvert(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: coloring-page convert [-brightness n] [-contrast n] [-invert] [-max-dim px] [-out page.png] -in photo.jpg")
		fmt.Fprintln(stderr, "Convert a PNG, JPEG or WebP photo into a coloring page")
		fs.PrintDefaults()
	}

	in := fs.String("in", "", "Source photo. May also be given as the first argument.")
	out := fs.String("out", "", "Output PNG. Defaults to "+imaging.DefaultFilename+" next to the source.")
	brightness := fs.Int("brightness", 0, "Brightness adjustment, -100 to 100.")
	contrast := fs.Int("contrast", 0, "Contrast adjustment, -100 to 100.")
	invert := fs.Bool("invert", false, "Draw edges black on white.")
	maxDim := fs.Int("max-dim", -1, "Downsize photos whose longer side exceeds this. Defaults to COLORING_PAGE_MAX_DIMENSION.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		fs.Usage()
		return errors.New("no input photo given")
	}

	if *maxDim < 0 {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		*maxDim = cfg.MaxDimension
	}

	opts := imaging.ConvertOptions{
		RenderOptions: imaging.RenderOptions{
			Tone:   imaging.Tone{Brightness: *brightness, Contrast: *contrast},
			Invert: *invert,
		},
		MaxDimension: *maxDim,
	}

	res, err := imaging.ConvertFile(*in, *out, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s -> %s (%dx%d, %.1f%% white)\n", res.Input, res.Output, res.Width, res.Height, res.WhitePercent)
	return nil
}
