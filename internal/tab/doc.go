// Package tab defines the tablature grid codec: the fixed-geometry
// character format that string-lines, cells, and tuning prefixes are
// written in, plus the note-name arithmetic shared by the tuning and
// chord packages.
//
// A string-line is a 3-character prefix ("E-|", "F#|"), a 2-character
// rule margin, then repeating 3-character cells:
//
//	e-|-------3-h5--|------
//	   ^margin ^cells
//
// Cells are "---" (blank), "--|" (barline), or an embellishment
// character followed by a right-justified fret number ("--3", "-12",
// "h-7"). The first cell starts at column 5; geometry constants here
// are the single source of truth for that layout.
package tab
