package main

// A `jql2` CLI for canonicalizing JQL2 query strings: parse a query into a
// Query Object Model tree and generate it back out as formatted, optionally
// syntax-highlighted, JQL2 text.

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/pflag"
	"github.com/valyala/fastjson"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"

	"github.com/jcr-go/jql2/internal/ansipainter"
	"github.com/jcr-go/jql2/internal/jql2"
	"github.com/jcr-go/jql2/internal/lg"
	"github.com/jcr-go/jql2/internal/qom"
)

const version = "1.0.0"

// flags
var flags = pflag.NewFlagSet("jql2", pflag.ExitOnError)
var flagVerbose = flags.BoolP("verbose", "v", false, "verbose operational logging")
var flagHelp = flags.BoolP("help", "h", false, "print this help")
var flagVersion = flags.Bool("version", false, "print version and exit")
var flagNoConfig = flags.Bool("no-config", false, "skip loading ~/.jql2.toml")
var flagExplain = flags.Bool("explain", false, `Substitute --vars values into $name bind variables before
printing, so the printed query previews what a server with those
bind variable values would actually receive.`)
var flagColor = flags.String("color", "", `Color scheme for output: "default", "monochrome", or "none".
Defaults to "default" on a terminal, "none" otherwise, unless overridden
by the "color" key in ~/.jql2.toml.`)
var flagVars = flags.String("vars", "", `Path to a JSON file of bind variable values
(e.g. {"minDate": "2021-01-01"}) to substitute into $name bind variables
before printing.`)

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "jql2: error: %s\n", fmt.Sprintf(format, args...))
}

func usage() {
	fmt.Printf("usage: jql2 [OPTIONS] QUERY\n\n")
	fmt.Printf("Parse a JQL2 QUERY string and print its canonicalized form.\n\n")
	fmt.Printf("options:\n")
	flags.SetOutput(os.Stdout)
	flags.PrintDefaults()
}

func loadVars(path string) (*fastjson.Value, error) {
	if path == "" {
		return nil, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fastjson.ParseBytes(data)
}

func painterFromColorName(name string) *ansipainter.ANSIPainter {
	if p, ok := ansipainter.PainterFromName[name]; ok {
		return p
	}
	return ansipainter.DefaultPainter
}

func resolveColorName(cfg *config) string {
	if *flagColor != "" {
		return *flagColor
	}
	if cfg != nil {
		if val, ok := cfg.GetString("color"); ok {
			return val
		}
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return "default"
	}
	return "none"
}

func main() {
	flags.SortFlags = false
	flags.Usage = usage
	flags.Parse(os.Args[1:])

	if *flagHelp {
		usage()
		os.Exit(0)
	}
	if *flagVersion {
		fmt.Printf("jql2 %s\nhttps://github.com/jcr-go/jql2\n", version)
		os.Exit(0)
	}

	// Setup operational logging, separate from internal/lg's JQL2_DEBUG
	// debug tracing.
	encoderConfig := ecszap.NewDefaultEncoderConfig()
	logLevel := zap.FatalLevel
	if *flagVerbose {
		logLevel = zap.DebugLevel
	}
	core := ecszap.NewCore(encoderConfig, os.Stdout, logLevel)
	logger := zap.New(core, zap.AddCaller()).Named("jql2")

	var cfg *config
	if !*flagNoConfig {
		err, c := loadConfig()
		if err != nil {
			errorf("%s", err)
			os.Exit(1)
		}
		cfg = c
	} else {
		cfg = &config{}
	}

	if len(flags.Args()) != 1 {
		errorf("missing QUERY argument")
		usage()
		os.Exit(2)
	}
	query := flags.Arg(0)
	logger.Debug("parsing query", zap.String("query", query))

	q, err := jql2.Parse(query, qom.DefaultFactory{})
	if err != nil {
		lg.Printf("parse error: %s", err)
		msg := err.Error()
		fmt.Fprintln(os.Stderr, wordwrap.WrapString(msg, 78))
		os.Exit(1)
	}

	varsPath := *flagVars
	if varsPath == "" && cfg != nil {
		varsPath, _ = cfg.GetString("vars")
	}
	if varsPath != "" && !*flagExplain {
		errorf("--vars requires --explain")
		os.Exit(2)
	}
	if *flagExplain {
		vars, err := loadVars(varsPath)
		if err != nil {
			errorf("loading vars file '%s': %s", varsPath, err)
			os.Exit(1)
		}
		if vars != nil {
			q = substituteBindVariables(q, vars)
			for _, name := range unusedVarNames(vars) {
				logger.Debug("--vars entry not referenced by any bind variable", zap.String("name", name))
			}
		}
	}

	out, err := jql2.Generate(q)
	if err != nil {
		errorf("%s", err)
		os.Exit(1)
	}

	painter := painterFromColorName(resolveColorName(cfg))
	fmt.Println(highlight(out, painter))
}
