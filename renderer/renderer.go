// Package renderer renders analysis results as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/etnz/mwrr"
)

//go:embed templates/*.md
var templates embed.FS

// RenderReport renders the per contract rates of an analysis.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":       "report_title.md",
		"report_contracts":   "report_contracts.md",
		"report_diagnostics": "report_diagnostics.md",
	}
	// Nothing to say when every record was usable.
	if r.Diagnostics.Dropped() == 0 && r.Diagnostics.Unclassified == 0 {
		partials["report_diagnostics"] = ""
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderFlows renders the cash flow series of a contract.
func RenderFlows(f *Flows) string {
	return renderTemplate("flows", "flows.md", nil, f)
}

// RenderDescriptions renders the distinct movement descriptions and their classification.
func RenderDescriptions(counts []mwrr.DescriptionCount) string {
	return renderTemplate("descriptions", "descriptions.md", nil, counts)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, path.Join("templates", mainFile))
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, path.Join("templates", file))
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
