// Command acfdump parses Valve ACF files and prints them as a tree, as
// cty-shaped JSON or as normalized ACF text.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/KimNorgaard/go-acf"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

type config struct {
	format   string
	strict   bool
	warnDup  bool
	maxDepth int
	logLevel string
	files    []string
}

// run parses the command line, dumps every file and returns the exit code:
// 0 on success, 1 if any file failed, 2 on a usage error.
func run(out, errOut io.Writer, args []string) int {
	cfg, code, ok := parseArgs(out, errOut, args)
	if !ok {
		return code
	}

	logger := newLogger(cfg.logLevel, errOut)
	opts := []acf.Option{acf.WithLogger(logger), acf.MaxDepth(cfg.maxDepth)}
	if cfg.strict {
		opts = append(opts, acf.SingleRoot())
	}
	if cfg.warnDup {
		opts = append(opts, acf.WarnDuplicateKeys())
	}

	code = 0
	for i, path := range cfg.files {
		if len(cfg.files) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", path)
		}
		if err := dumpFile(out, errOut, path, cfg.format, opts); err != nil {
			logger.Debug("acfdump: file failed", "path", path, "error", err)
			code = 1
		}
	}
	return code
}

func parseArgs(out, errOut io.Writer, args []string) (*config, int, bool) {
	app := kingpin.New("acfdump", "Parse Valve ACF files and print their contents.")
	app.UsageWriter(out)
	app.ErrorWriter(errOut)

	exitCode := -1
	app.Terminate(func(code int) {
		if exitCode < 0 {
			exitCode = code
		}
	})

	cfg := &config{}
	app.Flag("format", "Output format: tree, json or acf.").Short('f').Default("tree").EnumVar(&cfg.format, "tree", "json", "acf")
	app.Flag("strict", "Reject documents with more than one root block.").BoolVar(&cfg.strict)
	app.Flag("warn-duplicates", "Report keys that overwrite an earlier value.").BoolVar(&cfg.warnDup)
	app.Flag("max-depth", "Maximum block nesting depth.").Default("1000").IntVar(&cfg.maxDepth)
	app.Flag("log-level", "Log level: debug, info, warn or error.").Default("warn").EnumVar(&cfg.logLevel, "debug", "info", "warn", "error")
	app.Arg("file", "ACF files to parse.").Required().StringsVar(&cfg.files)

	_, err := app.Parse(args)
	if exitCode >= 0 {
		return nil, exitCode, false
	}
	if err != nil {
		fmt.Fprintf(errOut, "acfdump: error: %s, try --help\n", err)
		return nil, 2, false
	}
	if cfg.maxDepth <= 0 {
		fmt.Fprintln(errOut, "acfdump: error: --max-depth must be a positive integer")
		return nil, 2, false
	}
	return cfg, 0, true
}

func dumpFile(out, errOut io.Writer, path, format string, opts []acf.Option) error {
	doc, err := acf.ParseFile(path, opts...)
	if fatal := acf.FatalOnly(err); fatal != nil {
		writeDiagnostics(errOut, path, diagnostics(fatal))
		return fatal
	}
	if warns := acf.Warnings(err); len(warns) > 0 {
		var diags hcl.Diagnostics
		for _, w := range warns {
			if dw, ok := w.(acf.DuplicateKeyWarning); ok {
				diags = append(diags, dw.Diagnostic())
			}
		}
		writeDiagnostics(errOut, path, diags)
	}

	switch format {
	case "json":
		val := doc.Value()
		b, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", b)
		return err
	case "acf":
		return acf.NewEncoder(out).Encode(doc)
	default:
		for _, b := range doc.Blocks {
			printTree(out, b, 0)
		}
		return nil
	}
}

func diagnostics(err error) hcl.Diagnostics {
	if e, ok := err.(acf.Error); ok {
		return e.Diagnostics()
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Error",
		Detail:   err.Error(),
	}}
}

// writeDiagnostics renders diags with a source snippet when the file can
// be read.
func writeDiagnostics(w io.Writer, path string, diags hcl.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	files := make(map[string]*hcl.File)
	if src, err := os.ReadFile(path); err == nil {
		files[path] = &hcl.File{Bytes: src}
	}
	wr := hcl.NewDiagnosticTextWriter(w, files, 78, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		fmt.Fprintln(w, diags.Error())
	}
}

func printTree(w io.Writer, b *acf.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, b.Name)
	for _, k := range b.Keys() {
		fmt.Fprintf(w, "%s  %s = %q\n", indent, k, b.Expressions[k])
	}
	for _, c := range b.Children {
		printTree(w, c, depth+1)
	}
}

func newLogger(levelStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
