// Package platform knows how build directories encode their target platform
// and hides the operating-system differences of the filesystem calls the
// collector makes. Unix permission bits are applied directly; on Windows they
// are skipped because the OS has no equivalent.
package platform
