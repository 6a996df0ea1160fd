package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/ripple/pkg/dom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the retained node rendered inside <body>. When it is the
	// document body itself, its attributes are kept on the <body> tag.
	Body *dom.Node

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Styles contains inline CSS styles
	Styles []string

	// Scripts contains script tags appended to the end of the body
	Scripts []ScriptTag
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n"); err != nil {
		return err
	}

	body := page.Body
	isBody := body != nil && body.Kind() == dom.KindElement && body.Tag() == "body"
	if isBody {
		if _, err := io.WriteString(w, "<body"); err != nil {
			return err
		}
		if err := r.renderAttributes(w, body); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ">\n"); err != nil {
			return err
		}
		for _, c := range body.Children() {
			if err := r.renderNode(w, c, 1); err != nil {
				return err
			}
		}
	} else {
		if _, err := io.WriteString(w, "<body>\n"); err != nil {
			return err
		}
		if err := r.renderNode(w, body, 1); err != nil {
			return err
		}
	}

	for _, script := range page.Scripts {
		if err := renderScriptTag(w, script); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

func renderScriptTag(w io.Writer, script ScriptTag) error {
	if _, err := io.WriteString(w, "\n<script"); err != nil {
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
	}
	if _, err := fmt.Fprintf(w, ">%s</script>", script.Inline); err != nil {
		return err
	}
	return nil
}
