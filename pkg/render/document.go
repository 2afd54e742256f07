package render

import (
	"fmt"
	"io"
)

// Document holds the parts of a complete HTML page produced around an SSR pass.
type Document struct {
	// Head contains pre-rendered head tags, written verbatim.
	Head []string

	// Body is the pre-rendered body markup, written verbatim.
	Body string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS styles.
	Styles []string

	// Scripts contains script tags written at the end of the body.
	Scripts []ScriptTag

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Type   string // type attribute
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderDocument renders a complete HTML document to the given writer.
func (r *Renderer) RenderDocument(w io.Writer, doc Document) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, doc); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, script := range doc.Scripts {
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, doc Document) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	for _, tag := range doc.Head {
		if _, err := fmt.Fprintf(w, "  %s\n", tag); err != nil {
			return err
		}
	}

	for _, href := range doc.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	for _, style := range doc.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderScriptTag renders a script element.
func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "  <script"); err != nil {
		return err
	}

	if script.Src != "" {
		if _, err := fmt.Fprintf(w, ` src="%s"`, escapeAttr(script.Src)); err != nil {
			return err
		}
	}

	if script.Module {
		if _, err := io.WriteString(w, ` type="module"`); err != nil {
			return err
		}
	} else if script.Type != "" {
		if _, err := fmt.Fprintf(w, ` type="%s"`, escapeAttr(script.Type)); err != nil {
			return err
		}
	}

	if script.Defer {
		if _, err := io.WriteString(w, " defer"); err != nil {
			return err
		}
	}

	if script.Async {
		if _, err := io.WriteString(w, " async"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, ">"+script.Inline+"</script>\n"); err != nil {
		return err
	}

	return nil
}
