package rendering

import (
	"html/template"

	"github.com/jonathan/resume-builder/internal/types"
)

const baseCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: 'Calibri', 'Arial', sans-serif;
  background: white;
  color: #2c3e50;
  line-height: 1.6;
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
.resume-container { max-width: 210mm; min-height: 297mm; margin: 0 auto; padding: 15mm 20mm; background: white; }
.section { margin-bottom: 20px; page-break-inside: avoid; }
.section-title { font-size: 14pt; font-weight: 700; margin-bottom: 12px; text-transform: uppercase; letter-spacing: 1px; }
.summary { font-size: 11pt; line-height: 1.7; text-align: justify; color: #34495e; }
.skills-container { display: flex; flex-direction: column; gap: 4px; }
.skill-row { font-size: 11pt; line-height: 1.6; color: #2c3e50; margin: 0; }
.skill-row strong { color: #1a252f; }
.experience-item, .project-item, .education-item { margin-bottom: 16px; page-break-inside: avoid; }
.exp-header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 8px; }
.edu-row { display: flex; justify-content: space-between; align-items: baseline; margin-bottom: 2px; }
.exp-title-company { flex: 1; }
.exp-title, .project-title { font-size: 12pt; font-weight: 700; margin-bottom: 4px; }
.edu-degree { font-size: 12pt; font-weight: 700; color: #1a252f; }
.exp-company { font-size: 11pt; font-weight: 600; margin-bottom: 6px; }
.edu-institution { font-size: 11pt; font-weight: 500; color: #4a5568; margin: 0 0 12px 0; font-style: italic; }
.exp-duration { font-size: 10pt; font-style: italic; white-space: nowrap; margin-left: 15px; }
.edu-year { font-size: 11pt; font-weight: 600; color: #2c3e50; white-space: nowrap; }
.exp-bullets { margin-left: 20px; font-size: 10.5pt; line-height: 1.6; }
.exp-bullets li { margin-bottom: 6px; }
.tech-stack { font-size: 10pt; margin-bottom: 6px; font-style: italic; }
.project-description { font-size: 10.5pt; line-height: 1.6; }
@media print {
  body { margin: 0; padding: 0; }
  .resume-container { padding: 12mm 15mm; }
}
`

var templateCSS = map[types.TemplateID]string{
	types.TemplateModern: `
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 25px 30px; margin: -15mm -20mm 25px -20mm; text-align: center; }
.name { font-size: 32pt; font-weight: 700; margin-bottom: 8px; letter-spacing: 1px; }
.contact-info, .contact-links { font-size: 10pt; margin: 5px 0; opacity: 0.95; }
.section-title { color: #667eea; border-bottom: 3px solid #667eea; padding-bottom: 6px; }
.exp-title, .project-title { color: #667eea; }
.exp-company { color: #764ba2; }
.exp-duration, .edu-year { color: #7c3aed; }
`,
	types.TemplateProfessional: `
.header { background: #2c3e50; color: white; padding: 20px 25px; margin: -15mm -20mm 25px -20mm; }
.name { font-size: 30pt; font-weight: 700; margin-bottom: 8px; }
.contact-info, .contact-links { font-size: 10pt; margin: 4px 0; opacity: 0.9; }
.section-title { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 6px; }
.exp-title, .project-title { color: #2c3e50; }
.exp-company { color: #3498db; font-weight: 600; }
.exp-duration, .edu-year { color: #7f8c8d; }
`,
	types.TemplateClassic: `
body { font-family: 'Georgia', 'Times New Roman', serif; }
.header { text-align: center; border-bottom: 3px double #2c3e50; padding-bottom: 15px; margin-bottom: 25px; }
.name { font-size: 28pt; font-weight: 700; color: #1a252f; margin-bottom: 10px; text-transform: uppercase; letter-spacing: 2px; }
.contact-info, .contact-links { font-size: 10pt; color: #34495e; margin: 5px 0; }
.section-title { color: #1a252f; border-bottom: 2px solid #2c3e50; padding-bottom: 4px; }
.exp-title, .project-title, .edu-degree { color: #1a252f; }
.exp-company, .edu-institution { color: #34495e; font-style: italic; }
.exp-duration, .edu-year { color: #7f8c8d; }
`,
	types.TemplateExecutive: `
body { font-family: 'Garamond', 'Georgia', serif; color: #1a1a1a; }
.header { border-left: 5px solid #c9a961; padding-left: 25px; margin-bottom: 30px; }
.name { font-size: 34pt; font-weight: 700; color: #1a1a1a; margin-bottom: 8px; letter-spacing: 0.5px; }
.contact-info, .contact-links { font-size: 10.5pt; color: #4a4a4a; margin: 4px 0; }
.section-title { color: #c9a961; border-bottom: 2px solid #c9a961; padding-bottom: 6px; font-size: 13pt; }
.exp-title, .project-title { color: #1a1a1a; font-size: 12.5pt; }
.exp-company { color: #c9a961; font-weight: 700; }
.exp-duration, .edu-year { color: #6a6a6a; }
.summary { font-size: 11.5pt; font-style: italic; }
`,
	types.TemplateMinimalist: `
body { font-family: 'Helvetica Neue', 'Helvetica', 'Arial', sans-serif; color: #333; }
.header { margin-bottom: 30px; }
.name { font-size: 30pt; font-weight: 300; color: #000; margin-bottom: 10px; letter-spacing: -0.5px; }
.contact-info, .contact-links { font-size: 9.5pt; color: #666; margin: 4px 0; font-weight: 300; }
.section-title { color: #000; border-bottom: 1px solid #e0e0e0; padding-bottom: 6px; font-size: 12pt; font-weight: 600; }
.exp-title, .project-title { color: #000; font-weight: 600; }
.exp-company { color: #666; font-weight: 500; }
.exp-duration, .edu-year { color: #999; font-weight: 300; }
.exp-bullets { font-weight: 300; }
`,
	types.TemplateElegant: `
body { font-family: 'Helvetica', 'Arial', sans-serif; color: #1a1a1a; }
.header { text-align: center; margin-bottom: 25px; }
.name { font-size: 24pt; font-weight: 800; color: #000; margin-bottom: 10px; text-transform: uppercase; letter-spacing: 1px; }
.contact-info, .contact-links { font-size: 10pt; color: #333; margin: 4px 0; }
.section { margin-bottom: 22px; }
.section-title { color: #000; border: none; padding-bottom: 0; margin-bottom: 10px; font-size: 12.5pt; font-weight: 700; }
.exp-header, .edu-row { display: block; margin-bottom: 5px; font-weight: 700; font-size: 11pt; }
.exp-title, .exp-company, .exp-duration, .edu-degree, .edu-institution, .edu-year { display: inline; font-size: 11pt; font-style: normal; color: #000; margin: 0; }
.exp-company::before, .exp-duration::before, .edu-institution::before, .edu-year::before { content: " | "; font-weight: normal; color: #ccc; }
`,
}

// stylesFor returns the full stylesheet for a template, falling back to the default.
func stylesFor(id types.TemplateID) template.CSS {
	extra, ok := templateCSS[id]
	if !ok {
		extra = templateCSS[types.DefaultTemplate]
	}
	return template.CSS(baseCSS + extra)
}
