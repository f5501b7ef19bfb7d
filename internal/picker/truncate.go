package picker

import (
	"path/filepath"
	"strings"
)

const ellipsis = "..."

// TruncateDirPath shortens a directory path for display, keeping the
// leading segment (the ~ marker when present) and the last two path
// segments, collapsing the middle into an ellipsis.
func TruncateDirPath(path string, budget int) string {
	if budget <= 0 || len(path) <= budget {
		return path
	}

	sep := string(filepath.Separator)
	segs := strings.Split(path, sep)
	if len(segs) > 3 {
		head := segs[0]
		candidate := head + sep + ellipsis + sep + strings.Join(segs[len(segs)-2:], sep)
		if len(candidate) <= budget {
			return candidate
		}
		candidate = head + sep + ellipsis + sep + segs[len(segs)-1]
		if len(candidate) <= budget {
			return candidate
		}
	}

	// Last resort: keep the tail, which is the discriminating part.
	if budget <= len(ellipsis) {
		return path[:budget]
	}
	return ellipsis + path[len(path)-(budget-len(ellipsis)):]
}

// TruncateFileName shortens a file name to the budget while preserving
// its extension. The remaining room is split between a prefix and a
// suffix of the base name around an ellipsis, the odd character going
// to the prefix. When the extension alone overflows the budget the
// name is hard-truncated with a trailing ellipsis instead.
func TruncateFileName(name string, budget int) string {
	if budget <= 0 || len(name) <= budget {
		return name
	}

	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	room := budget - len(ext) - len(ellipsis)
	if room < 2 || len(base) < room {
		if budget <= len(ellipsis) {
			return name[:budget]
		}
		return name[:budget-len(ellipsis)] + ellipsis
	}

	prefix := (room + 1) / 2
	suffix := room - prefix
	return base[:prefix] + ellipsis + base[len(base)-suffix:] + ext
}
