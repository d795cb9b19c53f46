package types

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is a saved resume history entry. Only the raw text and the
// structured form fields are persisted; ResumeData is rebuilt from them.
type ResumeRecord struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	FullName    string       `json:"full_name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	GitHub      string       `json:"github,omitempty"`
	LinkedIn    string       `json:"linkedin,omitempty"`
	Portfolio   string       `json:"portfolio,omitempty"`
	JobTitle    string       `json:"job_title,omitempty"`
	JobKeywords []string     `json:"job_keywords"`
	Skills      []string     `json:"skills"`
	Projects    []Project    `json:"projects"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	ResumeText  string       `json:"resume_text"`
	TemplateID  TemplateID   `json:"template_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Contact returns the identity fields stored on the record.
func (r *ResumeRecord) Contact() Contact {
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

// SetContact copies identity fields onto the record.
func (r *ResumeRecord) SetContact(c Contact) {
	r.FullName = c.FullName
	r.Email = c.Email
	r.Phone = c.Phone
	r.Location = c.Location
	r.GitHub = c.GitHub
	r.LinkedIn = c.LinkedIn
	r.Portfolio = c.Portfolio
}
