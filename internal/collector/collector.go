package collector

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/boilr-dev/relcollect/internal/platform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DirPerm is the mode used for directories created under the release root.
const DirPerm os.FileMode = 0755

// PathConflictError means a release target path exists but is not a directory.
type PathConflictError struct {
	Path string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("release target %s exists and is not a directory", e.Path)
}

// IsPathConflict reports whether err is a PathConflictError.
func IsPathConflict(err error) bool {
	var e *PathConflictError
	return errors.As(err, &e)
}

// Collector moves artifacts from build directories into the release tree.
// It is not safe for concurrent use.
type Collector struct {
	fs   afero.Fs
	log  logrus.FieldLogger
	opts Options
}

// New returns a Collector operating on fs. Empty option fields fall back to
// the defaults for opts.ProjectRoot.
func New(fs afero.Fs, log logrus.FieldLogger, opts Options) *Collector {
	def := DefaultOptions(opts.ProjectRoot)
	if opts.ReleaseRoot == "" {
		opts.ReleaseRoot = def.ReleaseRoot
	}
	if opts.Prefix == "" {
		opts.Prefix = def.Prefix
	}
	if opts.ArtifactName == "" {
		opts.ArtifactName = def.ArtifactName
	}
	if opts.WindowsMarker == "" {
		opts.WindowsMarker = def.WindowsMarker
	}
	return &Collector{fs: fs, log: log, opts: opts}
}

// Options returns the effective options.
func (c *Collector) Options() Options {
	return c.opts
}

// Discover lists the build directories directly under the project root,
// sorted by name. Entries that are not directories or lack the prefix are
// ignored.
func (c *Collector) Discover() ([]BuildEntry, error) {
	infos, err := afero.ReadDir(c.fs, c.opts.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading project root %s: %w", c.opts.ProjectRoot, err)
	}

	var entries []BuildEntry
	for _, info := range infos {
		name := info.Name()
		if !platform.HasBuildPrefix(name, c.opts.Prefix) {
			continue
		}
		path := filepath.Join(c.opts.ProjectRoot, name)
		if !c.isDir(info, path) {
			continue
		}
		entries = append(entries, BuildEntry{Name: name, Path: path})
	}
	return entries, nil
}

// isDir follows symlinks so a linked build directory still counts.
func (c *Collector) isDir(info os.FileInfo, path string) bool {
	if info.IsDir() {
		return true
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	target, err := c.fs.Stat(path)
	return err == nil && target.IsDir()
}

// ResolveArtifact returns the path of the entry's executable and whether it
// exists. A missing artifact is the normal state of a build that has not
// finished, so it is reported as false rather than as an error.
func (c *Collector) ResolveArtifact(entry BuildEntry) (string, bool) {
	name := platform.ArtifactName(entry.Name, c.opts.ArtifactName, c.opts.WindowsMarker)
	path := filepath.Join(entry.Path, name)

	info, err := c.fs.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}

// TargetFor returns the release target for platformName without touching the
// filesystem.
func (c *Collector) TargetFor(platformName string) ReleaseTarget {
	return ReleaseTarget{
		PlatformName:  platformName,
		DirectoryPath: filepath.Join(c.opts.ReleaseRoot, platformName),
	}
}

// EnsureTarget creates <release root>/<platformName> if it does not exist.
// Calling it again for the same name is a no-op.
func (c *Collector) EnsureTarget(platformName string) (ReleaseTarget, error) {
	target := c.TargetFor(platformName)

	info, err := c.fs.Stat(target.DirectoryPath)
	switch {
	case err == nil && info.IsDir():
		return target, nil
	case err == nil:
		return target, &PathConflictError{Path: target.DirectoryPath}
	case !os.IsNotExist(err):
		return target, fmt.Errorf("checking release target %s: %w", target.DirectoryPath, err)
	}

	if err := c.fs.MkdirAll(target.DirectoryPath, DirPerm); err != nil {
		return target, fmt.Errorf("creating release target %s: %w", target.DirectoryPath, err)
	}
	return target, nil
}

// Transfer copies sourcePath into destinationDir under the same file name,
// replacing any existing file. The copy is written to a temporary file in
// destinationDir and renamed into place, so a failed copy never leaves a
// truncated artifact behind. Permission bits of the source are preserved.
func (c *Collector) Transfer(sourcePath, destinationDir string) error {
	src, err := c.fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", sourcePath, err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat artifact %s: %w", sourcePath, err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("artifact %s is a directory", sourcePath)
	}

	name := filepath.Base(sourcePath)
	dst := filepath.Join(destinationDir, name)

	tmp, err := afero.TempFile(c.fs, destinationDir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", destinationDir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return fmt.Errorf("copying %s to %s: %w", sourcePath, dst, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := platform.Chmod(c.fs, tmpName, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}

	if err := c.fs.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("moving artifact into %s: %w", dst, err)
	}
	return nil
}

// Run processes every discovered build directory once. Only a discovery
// failure is returned as an error; per-entry failures are logged and counted
// in the summary.
func (c *Collector) Run() (*Summary, error) {
	entries, err := c.Discover()
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, entry := range entries {
		summary.add(c.process(entry))
	}

	c.log.WithFields(logrus.Fields{
		"copied":  summary.Copied,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
		"planned": summary.Planned,
	}).Info("release collection finished")
	return summary, nil
}

func (c *Collector) process(entry BuildEntry) Outcome {
	log := c.log.WithField("entry", entry.Name)

	source, ok := c.ResolveArtifact(entry)
	if !ok {
		log.WithField("artifact", source).Debug("no artifact, skipping")
		return Outcome{Entry: entry, Status: StatusSkipped}
	}

	if c.opts.DryRun {
		target := c.TargetFor(entry.Name)
		log.WithFields(logrus.Fields{
			"source": source,
			"target": target.DirectoryPath,
		}).Info("would copy artifact")
		return Outcome{Entry: entry, Status: StatusPlanned, Source: source, Target: target.DirectoryPath}
	}

	target, err := c.EnsureTarget(entry.Name)
	if err == nil {
		err = c.Transfer(source, target.DirectoryPath)
	}
	if err != nil {
		log.WithError(err).WithField("source", source).Warn("file system error while copying artifact")
		return Outcome{Entry: entry, Status: StatusFailed, Source: source, Target: target.DirectoryPath, Err: err}
	}

	log.WithFields(logrus.Fields{
		"source": source,
		"target": target.DirectoryPath,
	}).Info("copied artifact")
	return Outcome{Entry: entry, Status: StatusCopied, Source: source, Target: target.DirectoryPath}
}
