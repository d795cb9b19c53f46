// Package schemas holds the JSON Schemas for resume documents.
package schemas

import "embed"

// Schema file names
const (
	ResumeData = "resume_data.schema.json"
	Fallback   = "fallback.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the contents of an embedded schema file.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{ResumeData, Fallback}
}
