// Package note implements the segmented text model behind a tagnote input.
//
// A Note is an ordered sequence of Segments. Plain text lives in segments of
// kind "text"; every other kind is an annotation carrying an opaque value.
// Offsets are 0-based rune positions into the note's plain text.
package note
