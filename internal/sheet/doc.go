// Package sheet converts an OKR project to and from a flat table of rows,
// one row per key result, for bulk export and destructive re-import.
package sheet
