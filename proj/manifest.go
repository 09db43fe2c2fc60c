package proj

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"lumen/lir"
	"lumen/report"

	"github.com/pelletier/go-toml"
)

// LumenVersion is the current Lumen toolchain version as a string.
const LumenVersion string = "0.1.0"

// ManifestFileName is the name for Lumen project manifest files.
const ManifestFileName string = "lumen-proj.toml"

// FileExt is the file extension for a Lumen source file.
const FileExt string = ".lum"

// Manifest describes a Lumen project as it is encoded in TOML.
type Manifest struct {
	Name         string       `toml:"name"`
	LumenVersion string       `toml:"lumen-version"`
	LogLevel     string       `toml:"log-level"`
	Opt          lir.OptFlags `toml:"opt"`
}

// logLevelNames maps TOML log level strings to reporter log levels.
var logLevelNames = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// LoadManifest loads and validates a project manifest.  `abspath` is the
// absolute path to the project directory.
func LoadManifest(abspath string) (*Manifest, error) {
	f, err := os.Open(filepath.Join(abspath, ManifestFileName))
	if err != nil {
		return nil, fmt.Errorf("unable to open project file at `%s`: %s", abspath, err.Error())
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading project file at `%s`: %s", abspath, err.Error())
	}

	man := &Manifest{LogLevel: "verbose"}
	if err := toml.Unmarshal(buff, man); err != nil {
		return nil, fmt.Errorf("error parsing project file at `%s`: %s", abspath, err.Error())
	}

	if err := man.validate(abspath); err != nil {
		return nil, err
	}

	return man, nil
}

// validate checks that the top level manifest contents are valid.
func (m *Manifest) validate(abspath string) error {
	if m.Name == "" {
		return fmt.Errorf("<project at `%s`>: missing project name", abspath)
	}

	if !isValidIdentifier(m.Name) {
		return fmt.Errorf("<project at `%s`>: project name must be a valid identifier", abspath)
	}

	if _, ok := logLevelNames[m.LogLevel]; !ok {
		return fmt.Errorf("<project `%s`>: unknown log level `%s`", m.Name, m.LogLevel)
	}

	if m.LumenVersion != LumenVersion {
		report.PrintWarningMessage("Project Warning", fmt.Sprintf("version of project `%s` (v%s) does not match current lumen version (v%s)",
			m.Name,
			m.LumenVersion,
			LumenVersion,
		))
	}

	return nil
}

// ReporterLogLevel translates the manifest's log level string into a reporter
// log level.  Validation guarantees the string is known.
func (m *Manifest) ReporterLogLevel() int {
	return logLevelNames[m.LogLevel]
}

// InitManifest creates a fresh manifest file for the project directory at
// `abspath`.  It fails if a manifest already exists there.
func InitManifest(abspath, name string) (*Manifest, error) {
	if !isValidIdentifier(name) {
		return nil, fmt.Errorf("project name `%s` must be a valid identifier", name)
	}

	manPath := filepath.Join(abspath, ManifestFileName)
	if _, err := os.Stat(manPath); err == nil {
		return nil, fmt.Errorf("project file already exists at `%s`", abspath)
	}

	man := &Manifest{
		Name:         name,
		LumenVersion: LumenVersion,
		LogLevel:     "verbose",
		Opt: lir.OptFlags{
			Peephole: true,
		},
	}

	buff, err := toml.Marshal(man)
	if err != nil {
		return nil, fmt.Errorf("error encoding project file: %s", err.Error())
	}

	if err := ioutil.WriteFile(manPath, buff, 0644); err != nil {
		return nil, fmt.Errorf("error writing project file at `%s`: %s", abspath, err.Error())
	}

	return man, nil
}

// isValidIdentifier returns whether the given string could be a Lumen
// identifier: it must start with a letter or underscore and contain only
// letters, digits, and underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z'):
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
