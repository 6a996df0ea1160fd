package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// NodeIDs adds a data-rid attribute carrying each element's node ID, so
	// a remote client can address events back to the retained node.
	NodeIDs bool
}

// Renderer serializes retained trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders n and its descendants to an HTML string.
func (r *Renderer) RenderToString(n *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its descendants to w.
func (r *Renderer) RenderToWriter(w io.Writer, n *dom.Node) error {
	return r.renderNode(w, n, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, n *dom.Node, depth int) error {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case dom.KindElement:
		return r.renderElement(w, n, depth)
	case dom.KindText:
		_, err := io.WriteString(w, escapeHTML(n.Text()))
		return err
	case dom.KindFragment:
		for _, c := range n.Children() {
			if err := r.renderNode(w, c, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind())
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, n *dom.Node, depth int) error {
	tag := n.Tag()

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, n); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	children := n.Children()
	block := r.config.Pretty && len(children) > 0 && !isInlineElement(tag) && !textOnly(children)
	if block {
		io.WriteString(w, "\n")
	}

	for _, c := range children {
		if err := r.renderNode(w, c, depth+1); err != nil {
			return err
		}
	}

	if block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes writes attributes in sorted order, followed by the live
// control properties and the optional node ID.
func (r *Renderer) renderAttributes(w io.Writer, n *dom.Node) error {
	for _, name := range n.AttrNames() {
		value, _ := n.Attr(name)
		if value == "" && isBooleanAttr(name) {
			if _, err := fmt.Fprintf(w, " %s", name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(value)); err != nil {
			return err
		}
	}

	for _, name := range n.PropNames() {
		value, _ := n.Prop(name)
		if n.HasAttr(name) {
			continue
		}
		switch v := value.(type) {
		case bool:
			if v {
				if _, err := fmt.Fprintf(w, " %s", name); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(fmt.Sprint(v))); err != nil {
				return err
			}
		}
	}

	if r.config.NodeIDs {
		if _, err := io.WriteString(w, ` data-rid="`+strconv.FormatUint(n.ID(), 10)+`"`); err != nil {
			return err
		}
	}
	return nil
}

// textOnly reports whether every child is a text node; such elements stay on
// one line in pretty mode.
func textOnly(children []*dom.Node) bool {
	for _, c := range children {
		if !c.IsText() {
			return false
		}
	}
	return true
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

// inlineElements don't get their own lines in pretty-printed output.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "cite": true,
	"code": true, "em": true, "i": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are attributes that are written as a bare name when present.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true,
	"autoplay": true, "checked": true, "controls": true,
	"default": true, "defer": true, "disabled": true,
	"hidden": true, "multiple": true, "muted": true,
	"novalidate": true, "open": true, "readonly": true,
	"required": true, "reversed": true, "selected": true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
