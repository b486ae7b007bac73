package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"lintang/gcjwgs/pkg/batch"
	"lintang/gcjwgs/pkg/config"
	"lintang/gcjwgs/pkg/server/rest/service"

	"github.com/go-chi/httplog/v2"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

var (
	inFile  = flag.String("in", "", "csv input, rows lat,lon[,country]. empty reads stdin")
	outFile = flag.String("out", "", "csv output. empty writes stdout")
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:], ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := cfg.SlogLevel()
	logger := httplog.NewLogger("gcjwgs-batch", httplog.Options{
		LogLevel: level,
		JSON:     cfg.LogJSON,
		Concise:  true,
		Writer:   os.Stderr,
	})

	var in io.Reader = os.Stdin
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			logger.Error("open input", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	var bar *progressbar.ProgressBar
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			logger.Error("create output", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f

		// progress only when stdout is not the data stream.
		bar = progressbar.NewOptions(0,
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan][1/1][reset] converting gcj-02 coordinates..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := service.NewConversionService(cfg.DefaultRegion, cfg.H3Resolution, cfg.BatchWorkers)
	sum, err := batch.Run(ctx, svc, in, out, cfg.DefaultRegion, bar)
	if err != nil {
		logger.Error("batch conversion failed", "err", err)
		os.Exit(1)
	}
	if bar != nil {
		fmt.Println("")
	}
	logger.Info("batch conversion done", "rows", sum.Rows, "converted", sum.Converted)
}
