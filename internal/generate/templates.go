package generate

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Template names, one per kind of generated file.
const (
	tmplReadme    = "readme.md.tmpl"
	tmplPyproject = "pyproject.toml.tmpl"
	tmplPackage   = "package.json.tmpl"
	tmplPython    = "module.py.tmpl"
	tmplDocument  = "document.md.tmpl"
	tmplPlain     = "plain.tmpl"
)

// fileData is the data passed to every template.
type fileData struct {
	// Name is the node name.
	Name string
	// Stem is Name without its extension.
	Stem string
	// Parent is the name of the containing directory.
	Parent string
	// Comment is the annotation, or a fallback built from Name.
	Comment string
}

// templateFor picks the template of a file name.
func templateFor(name string) string {
	switch {
	case name == "pyproject.toml":
		return tmplPyproject
	case name == "package.json":
		return tmplPackage
	case path.Ext(name) == ".py":
		return tmplPython
	case path.Ext(name) == ".md":
		return tmplDocument
	default:
		return tmplPlain
	}
}

// renderFile renders the content of a file node.
func renderFile(name, parent, annotation string) ([]byte, error) {
	data := fileData{
		Name:    name,
		Stem:    strings.TrimSuffix(name, path.Ext(name)),
		Parent:  parent,
		Comment: annotation,
	}
	tmpl := templateFor(name)
	if data.Comment == "" {
		switch tmpl {
		case tmplPython:
			data.Comment = name + " module"
		case tmplDocument:
			data.Comment = name + " document"
		}
	}
	return render(tmpl, data)
}

// renderReadme renders the README.md written into every directory.
func renderReadme(dir, annotation string) ([]byte, error) {
	comment := annotation
	if comment == "" {
		comment = dir + " module"
	}
	return render(tmplReadme, fileData{Name: dir, Stem: dir, Comment: comment})
}

func render(name string, data fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
