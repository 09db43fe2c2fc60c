// Package cmd is the top-level "driver" package for the Lumen toolchain: it
// contains the functionality for parsing command-line arguments and running
// the requested subcommand.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lumen/proj"
	"lumen/report"

	"github.com/ComedicChimera/olive"
)

// logLevels maps the CLI log level selector values to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// Execute is the main entry point for the `lumen` CLI utility.
func Execute() {
	// Internal invariant violations (eg. a dangling block id in a control
	// flow graph) surface as panics; report them as internal errors rather
	// than a raw stack trace.
	defer func() {
		if x := recover(); x != nil {
			report.ReportICE("%v", x)
		}
	}()

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("lumen", "lumen is a tool for managing Lumen projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the toolchain log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "validate a project", true)
	checkCmd.AddPrimaryArg("project-path", "the path to the project to check", true)

	modCmd := cli.AddSubcommand("mod", "manage projects", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a project", true)
	modInitCmd.AddStringArg("name", "n", "the project name", false)
	modInitCmd.AddPrimaryArg("project-path", "the path to the project directory", true)

	cli.AddSubcommand("version", "print the Lumen version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, result.Arguments["loglevel"].(string))
	case "mod":
		execModCommand(subResult)
	case "version":
		report.DisplayInfoMessage("Lumen Version", proj.LumenVersion)
	}
}

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	report.InitReporter(logLevels[loglevel])

	// get the primary argument: the root path
	rootPath, _ := result.PrimaryArg()
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		report.ReportFatal("invalid project path `%s`: %s", rootPath, err.Error())
	}

	man, err := proj.LoadManifest(absPath)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	sources, err := collectSourceFiles(absPath)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	report.DisplayInfoMessage("Project", fmt.Sprintf("%s v%s (%d source files)", man.Name, man.LumenVersion, len(sources)))
}

// execModCommand executes the `mod` subcommand and its subcommands.  It
// handles all errors related to this command.
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, ok := result.Subcommand()
	if !ok || subcmdName != "init" {
		report.ReportFatal("missing `mod` subcommand")
	}

	rootPath, _ := subResult.PrimaryArg()
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		report.ReportFatal("invalid project path `%s`: %s", rootPath, err.Error())
	}

	// the project name defaults to the directory name
	name := filepath.Base(absPath)
	if nameArg, ok := subResult.Arguments["name"]; ok {
		name = nameArg.(string)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		report.ReportFatal("unable to create project directory at `%s`: %s", absPath, err.Error())
	}

	man, err := proj.InitManifest(absPath, name)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	report.DisplayInfoMessage("Initialized Project", man.Name)
}

// collectSourceFiles lists the Lumen source files directly inside the project
// directory.
func collectSourceFiles(abspath string) ([]string, error) {
	entries, err := os.ReadDir(abspath)
	if err != nil {
		return nil, fmt.Errorf("unable to read project directory at `%s`: %s", abspath, err.Error())
	}

	var sources []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), proj.FileExt) {
			sources = append(sources, filepath.Join(abspath, entry.Name()))
		}
	}

	return sources, nil
}
