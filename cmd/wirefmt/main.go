package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	wirefmt "github.com/reoring/wirefmt"
	drvgojson "github.com/reoring/wirefmt/source/gojson"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "probe":
		probeCmd(os.Args[2:])
	case "sanitize":
		sanitizeCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "wirefmt CLI\n\nUsage:\n  wirefmt probe [file]\n  wirefmt sanitize [file]\n  wirefmt convert -from xml|json -to xml|json [-config wirefmt.toml] [file]\n\nReads stdin when no file is given.")
}

func setup(fs *flag.FlagSet) *string {
	return fs.String("config", "", "TOML config file with reader defaults")
}

func apply(cfgPath string) config {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("config load failed")
	}
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		log = log.Level(lvl)
	}
	if cfg.Driver == "gojson" {
		wirefmt.SetJSONDriver(drvgojson.Driver())
	} else {
		wirefmt.UseDefaultJSONDriver()
	}
	return cfg
}

func readInput(args []string) []byte {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("path", args[0]).Msg("read failed")
		}
		return data
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("read stdin failed")
	}
	return data
}

func probeCmd(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	cfgPath := setup(fs)
	_ = fs.Parse(args)
	_ = apply(*cfgPath)

	data := string(readInput(fs.Args()))
	switch {
	case wirefmt.LooksLikeXML(data):
		fmt.Println("xml")
	case wirefmt.LooksLikeJSON(data):
		fmt.Println("json")
	default:
		fmt.Println("unknown")
		os.Exit(1)
	}
}

func sanitizeCmd(args []string) {
	fs := flag.NewFlagSet("sanitize", flag.ExitOnError)
	cfgPath := setup(fs)
	_ = fs.Parse(args)
	_ = apply(*cfgPath)

	out := wirefmt.SanitizeEntities(string(readInput(fs.Args())))
	if _, err := io.WriteString(os.Stdout, out); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	cfgPath := setup(fs)
	var from, to string
	fs.StringVar(&from, "from", "", "input format: xml or json (probed when empty)")
	fs.StringVar(&to, "to", "", "output format: xml or json")
	_ = fs.Parse(args)
	cfg := apply(*cfgPath)

	data := string(readInput(fs.Args()))
	inFormat, ok := parseFormat(from)
	if !ok {
		switch {
		case wirefmt.LooksLikeXML(data):
			inFormat = wirefmt.FormatXML
		case wirefmt.LooksLikeJSON(data):
			inFormat = wirefmt.FormatJSON
		default:
			log.Fatal().Msg("cannot determine input format; pass -from")
		}
	}
	outFormat, ok := parseFormat(to)
	if !ok {
		log.Fatal().Str("to", to).Msg("unknown output format")
	}

	doc, err := wirefmt.ReadDocumentString(data, inFormat, cfg.readOpt())
	if err != nil {
		log.Fatal().Err(err).Stringer("format", inFormat).Msg("parse failed")
	}
	log.Debug().Stringer("from", inFormat).Stringer("to", outFormat).Msg("parsed document")

	doc = transform(doc, inFormat, outFormat)
	if err := wirefmt.WriteScoped(os.Stdout, outFormat, func(w *wirefmt.Writer) error {
		return w.WriteDocument(doc)
	}); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
	fmt.Println()
}

func parseFormat(s string) (wirefmt.Format, bool) {
	switch s {
	case "xml":
		return wirefmt.FormatXML, true
	case "json":
		return wirefmt.FormatJSON, true
	default:
		return 0, false
	}
}
