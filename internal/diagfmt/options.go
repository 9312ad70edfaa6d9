// Package diagfmt renders diagnostics and token dumps for humans and
// machines.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// Context is the number of source lines shown before the defect line.
	Context   int8
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds line/col alongside byte offsets.
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the Bag.
	Max          int
	IncludeNotes bool
}
