/*
 * casm - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command casm assembles one or more base names into .ob/.ent/.ext
// files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/casm/internal/assembler"
	"github.com/rcornwell/casm/internal/config"
	"github.com/rcornwell/casm/internal/logging"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optVerbose := getopt.BoolLong("verbose", 'v', "Echo info-level log records to stderr as well as warnings and diagnostics")
	optKeep := getopt.BoolLong("keep-intermediate", 'k', "Keep the .am intermediate file after a successful run")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	bases := getopt.Args()
	if len(bases) == 0 {
		getopt.Usage()
		os.Exit(1)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	Logger = slog.New(logging.New(file, *optVerbose))
	slog.SetDefault(Logger)

	var settings config.Settings
	if *optConfig != "" {
		cf, err := os.Open(*optConfig)
		if err != nil {
			Logger.Error("cannot open configuration file", "file", *optConfig, "error", err.Error())
			os.Exit(1)
		}
		settings, err = config.Parse(cf)
		cf.Close()
		if err != nil {
			Logger.Error("configuration error", "error", err.Error())
			os.Exit(1)
		}
	}

	opts := assembler.Options{
		MaxLineLength:    settings.MaxLineLength,
		KeepIntermediate: *optKeep,
		OutputDir:        settings.OutputDir,
	}

	ok := true
	for _, base := range bases {
		ctx := assembler.New(base)
		if !assembler.Run(ctx, opts) {
			ok = false
			for _, d := range ctx.Diags {
				logging.Diagnostic(Logger, d)
			}
		}
		fmt.Println(assembler.Summary(ctx))
	}

	if !ok {
		os.Exit(1)
	}
}
