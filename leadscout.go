// Package leadscout provides a CLI-based local business lead finder.
// It streams AI-generated leads (with web source citations) for a
// keyword/location query, decodes them incrementally from a
// newline-delimited JSON stream, archives searches locally, and exports
// results to CSV, XLSX, KML, the clipboard, or a GitHub Gist.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, etree/).
package leadscout
