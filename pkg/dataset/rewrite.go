package dataset

import (
	"sort"
	"strings"
)

// Default rewrite pair: the GraSP release stores frame paths relative to the
// dataset root, training jobs read them from HPC scratch space.
const (
	DefaultPathPrefix = "GraSP/train/frames/"
	DefaultPathRoot   = "/scratch/e0957602/BN4101/grasp_frames/"
)

// groupKeySeparator joins sorted paths into a group key. Unit separator
// cannot appear in a sane file path.
const groupKeySeparator = "\x1f"

// rewriteImagePath maps a raw image path into the configured root. A path
// that does not start with the prefix is returned unchanged, which also makes
// the function idempotent: an already-rewritten path passes through.
func rewriteImagePath(path, prefix, root string) string {
	if prefix != "" && strings.HasPrefix(path, prefix) {
		return root + path[len(prefix):]
	}
	return path
}

// rewriteImagePaths rewrites a full image list, preserving order.
func rewriteImagePaths(paths []string, prefix, root string) []string {
	rewritten := make([]string, len(paths))
	for i, p := range paths {
		rewritten[i] = rewriteImagePath(p, prefix, root)
	}
	return rewritten
}

// groupKey derives the canonical identity of a frame sequence from its
// rewritten image list: the sorted paths joined with a separator. Records
// whose image lists contain the same paths in any order map to the same key,
// so their examples always land in the same split partition.
func groupKey(images []string) string {
	sorted := make([]string, len(images))
	copy(sorted, images)
	sort.Strings(sorted)
	return strings.Join(sorted, groupKeySeparator)
}
