// Package buffer provides the line-oriented text buffer that every
// tablature operation works against.
//
// The buffer is the host's view of the document: plain text split into
// lines, addressed either by absolute byte offset or by (line, column)
// points. Tablature operations resolve offsets into grid positions and
// then mutate whole lines; the buffer itself knows nothing about staves
// or cells.
//
// All methods are safe for concurrent use. Editing is single-writer in
// practice (one host event at a time), but a config reload callback may
// read the buffer while the event loop owns it.
package buffer
