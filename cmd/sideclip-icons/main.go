package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/Mavwarf/sideclip-icons/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	configPath := ""
	outDir := ""

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fatal("--config requires a file path")
			}
		case "--out", "-o":
			if i+1 < len(args) {
				outDir = args[i+1]
				i++
			} else {
				fatal("--out requires a directory")
			}
		default:
			filtered = append(filtered, args[i])
		}
	}

	cmd := "generate"
	if len(filtered) > 0 {
		cmd = filtered[0]
		filtered = filtered[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-V", "--version":
		printVersion()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}

	switch cmd {
	case "generate":
		os.Exit(generateCmd(cfg, os.Stdout, os.Stderr, isTerminal()))
	case "verify":
		dir := cfg.OutDir
		if len(filtered) > 0 {
			dir = filtered[0]
		}
		os.Exit(verifyCmd(dir, cfg.Sizes, os.Stdout, os.Stderr))
	case "history":
		os.Exit(historyCmd(filtered, cfg, os.Stdout, os.Stderr))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'sideclip-icons help' for usage.\n")
		os.Exit(1)
	}
}

// isTerminal reports whether stdout is an interactive terminal, in which
// case status lines get emoji markers.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("sideclip-icons %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("sideclip-icons %s - Generate the SideClip extension icons\n", version)
	fmt.Println(`
Usage:
  sideclip-icons [options] [command]

Options:
  --config, -c <path>    Path to sideclip-icons.json
  --out, -o <dir>        Output directory (default: icons)

Commands:
  generate               Write icon<size>.png for every size (default)
  verify [dir]           Check the PNG structure of generated icons
  history [n]            Show the last n run log records (default 20)
  history clear          Delete the run log
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                                  (explicit)
  2. sideclip-icons.json next to binary               (portable)
  3. ~/.config/sideclip-icons/sideclip-icons.json     (user default)
  SIDECLIP_* environment variables override the file.

Examples:
  sideclip-icons                      Write icons/icon{16,32,48,128}.png
  sideclip-icons -o dist/icons        Write into dist/icons
  SIDECLIP_SVG=true sideclip-icons    Also write icon.svg and icon16.svg
  sideclip-icons verify               Check icons/ against the configured sizes`)
}
