package domain

import (
	"fmt"
	"os"
	"strings"
)

// Property keys understood by the core. The sequential reference keys are a
// contract with the external property format and must not change.
const (
	// PropRefPrefix is the prefix of the sequential library reference keys:
	// libraryRef1, libraryRef2, ... with no gaps.
	PropRefPrefix = "libraryRef"

	// PropLibrary marks a project as a library. Anything but a boolean
	// true reads as false.
	PropLibrary = "library"

	// PropTarget holds the declared platform target id.
	PropTarget = "target"
)

// refKey returns the property key for the idx-th declared reference.
// Indexes start at 1.
func refKey(idx int) string {
	return fmt.Sprintf("%s%d", PropRefPrefix, idx)
}

// platformPath converts a declared path (always written with forward
// slashes) to the platform separator.
func platformPath(path string) string {
	return strings.ReplaceAll(path, "/", string(os.PathSeparator))
}

// normalizePath converts separators and strips a trailing separator so that
// declared paths can be compared textually.
func normalizePath(path string) string {
	p := platformPath(path)
	return strings.TrimSuffix(p, string(os.PathSeparator))
}
