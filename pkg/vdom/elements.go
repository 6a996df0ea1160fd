package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// H creates an element description with the given tag and arguments.
// Arguments can be: Attr, []Attr, EventHandler, Hook, *VNode, []*VNode,
// strings, numbers, components, or false/nil placeholders for absent
// children. An untyped nil is ignored so attributes can be conditional.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0, len(args)),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}

		case Hook:
			node.Hooks.OnMount = v

		default:
			node.Children = appendChild(node.Children, v)
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		v.Key = keyString(a.Value)
	}
	v.Props[a.Key] = a.Value
}

// Document structure elements

func Body(args ...any) *VNode { return H("body", args...) }

// Content sectioning elements

func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Article(args ...any) *VNode { return H("article", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H2(args ...any) *VNode      { return H("h2", args...) }
func H3(args ...any) *VNode      { return H("h3", args...) }

// Text content elements

func Div(args ...any) *VNode  { return H("div", args...) }
func P(args ...any) *VNode    { return H("p", args...) }
func Span(args ...any) *VNode { return H("span", args...) }
func Pre(args ...any) *VNode  { return H("pre", args...) }
func Ul(args ...any) *VNode   { return H("ul", args...) }
func Ol(args ...any) *VNode   { return H("ol", args...) }
func Li(args ...any) *VNode   { return H("li", args...) }
func Hr(args ...any) *VNode   { return H("hr", args...) }

// Inline text semantics

func A(args ...any) *VNode      { return H("a", args...) }
func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }
func Code(args ...any) *VNode   { return H("code", args...) }
func Small(args ...any) *VNode  { return H("small", args...) }
func Br(args ...any) *VNode     { return H("br", args...) }

// Form elements

func Form(args ...any) *VNode     { return H("form", args...) }
func Input(args ...any) *VNode    { return H("input", args...) }
func Textarea(args ...any) *VNode { return H("textarea", args...) }
func Select(args ...any) *VNode   { return H("select", args...) }
func Option(args ...any) *VNode   { return H("option", args...) }
func Button(args ...any) *VNode   { return H("button", args...) }
func Label(args ...any) *VNode    { return H("label", args...) }

// Table elements

func Table(args ...any) *VNode { return H("table", args...) }
func Tbody(args ...any) *VNode { return H("tbody", args...) }
func Tr(args ...any) *VNode    { return H("tr", args...) }
func Td(args ...any) *VNode    { return H("td", args...) }

// Media elements

func Img(args ...any) *VNode { return H("img", args...) }
