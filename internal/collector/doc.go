// Package collector gathers per-platform build artifacts into a release tree.
//
// A project root holds build directories named "<prefix><platform>" (for
// example "build-linux-amd64"). Each may contain a single executable, "br" or
// "br.exe" for Windows builds. Run copies every executable it finds into
// "<release root>/<build directory name>/", creating that directory on demand.
// Build directories without an executable are skipped, and a copy failure for
// one directory is logged without stopping the others.
package collector
