package collector

import (
	"fmt"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults for Options.
const (
	DefaultPrefix        = "build-"
	DefaultArtifactName  = "br"
	DefaultWindowsMarker = "windows"
	DefaultReleaseDir    = "releases"
)

// Options controls where the collector looks and what it looks for.
type Options struct {
	ProjectRoot   string
	ReleaseRoot   string
	Prefix        string
	ArtifactName  string
	WindowsMarker string
	// DryRun resolves artifacts and reports planned copies without writing.
	DryRun bool
}

// DefaultOptions returns options for a project rooted at projectRoot with the
// release tree at <projectRoot>/releases.
func DefaultOptions(projectRoot string) Options {
	return Options{
		ProjectRoot:   projectRoot,
		ReleaseRoot:   filepath.Join(projectRoot, DefaultReleaseDir),
		Prefix:        DefaultPrefix,
		ArtifactName:  DefaultArtifactName,
		WindowsMarker: DefaultWindowsMarker,
	}
}

// BuildEntry is a discovered build directory.
type BuildEntry struct {
	Name string
	Path string
}

// ReleaseTarget is the per-platform directory inside the release root.
type ReleaseTarget struct {
	PlatformName  string
	DirectoryPath string
}

// Status is the result of processing one build entry.
type Status int

const (
	StatusSkipped Status = iota
	StatusCopied
	StatusFailed
	StatusPlanned
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCopied:
		return "copied"
	case StatusFailed:
		return "failed"
	case StatusPlanned:
		return "planned"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records what happened to one build entry.
type Outcome struct {
	Entry  BuildEntry
	Status Status
	Source string // resolved artifact path, empty when skipped
	Target string // destination directory, empty when skipped
	Err    error  // set when Status is StatusFailed
}

// Summary is the result of a run. Outcomes are in discovery order.
type Summary struct {
	Copied   int
	Skipped  int
	Failed   int
	Planned  int
	Outcomes []Outcome
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusCopied:
		s.Copied++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	case StatusPlanned:
		s.Planned++
	}
	s.Outcomes = append(s.Outcomes, o)
}

var printer = message.NewPrinter(language.English)

func (s *Summary) String() string {
	if s.Planned > 0 {
		return printer.Sprintf("%d planned, %d skipped", s.Planned, s.Skipped)
	}
	return printer.Sprintf("%d copied, %d skipped, %d failed", s.Copied, s.Skipped, s.Failed)
}
