// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeData is the canonical structured resume consumed by every renderer.
// It is rebuilt from raw resume text and fallback form fields on each render.
type ResumeData struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`

	Summary string `json:"summary,omitempty"`

	// Skills holds bare skill tokens or "Category: a, b" composites.
	// Renderers branch on the presence of ':' so entries are kept verbatim.
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Education  []Education  `json:"education"`
}

// Experience is a single employment entry
type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

// Project is a single project entry
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Tech        string `json:"tech"`
}

// Education is a single education entry
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Contact holds the identity fields copied onto ResumeData
type Contact struct {
	FullName  string `json:"fullName" validate:"max=200"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=50"`
	Location  string `json:"location" validate:"max=200"`
	GitHub    string `json:"github,omitempty" validate:"max=500"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"max=500"`
	Portfolio string `json:"portfolio,omitempty" validate:"max=500"`
}

// Fallback holds previously entered form data in its textual form.
// A section falls back to these fields when the raw text yields nothing for it.
type Fallback struct {
	Skills     string  `json:"skills"`     // comma-separated
	Projects   string  `json:"projects"`   // blank-line blocks: name, description, tech
	Experience string  `json:"experience"` // blank-line blocks: title, company, duration, "-" bullets
	Education  string  `json:"education"`  // one "degree, institution, year" per line
	Contact    Contact `json:"contact"`
}

// Contact returns the identity fields of the resume.
func (r *ResumeData) Contact() Contact {
	return Contact{
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		GitHub:    r.GitHub,
		LinkedIn:  r.LinkedIn,
		Portfolio: r.Portfolio,
	}
}

// IsEmpty reports whether the resume carries no section content at all.
func (r *ResumeData) IsEmpty() bool {
	return r.Summary == "" && len(r.Skills) == 0 && len(r.Experience) == 0 &&
		len(r.Projects) == 0 && len(r.Education) == 0
}
