package vdom

import (
	"strings"

	"github.com/vango-dev/ripple/pkg/dom"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Prop sets an arbitrary property.
func Prop(key string, value any) Attr { return attr(key, value) }

// Key sets the identity key used for keyed reconciliation.
// Integers are formatted in base 10; other values with fmt.
func Key(key any) Attr { return attr("key", keyString(key)) }

// RefTo captures the retained node into r.
func RefTo(r *Ref) Attr { return attr("ref", r) }

// RefFunc calls fn with the retained node on every patch.
func RefFunc(fn func(n *dom.Node)) Attr { return attr("ref", fn) }

// OnMount runs fn once when the retained node is created.
func OnMount(fn func(n *dom.Node)) Hook { return Hook(fn) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf sets the class attribute only if condition is true.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{}
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Hidden toggles the hidden attribute.
func Hidden(hidden bool) Attr { return attr("hidden", hidden) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value binds the form-control value property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled toggles the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Readonly toggles the readonly attribute.
func Readonly(readonly bool) Attr { return attr("readonly", readonly) }

// Required toggles the required attribute.
func Required(required bool) Attr { return attr("required", required) }

// Checked binds the checkbox checked property.
func Checked(checked bool) Attr { return attr("checked", checked) }

// Selected binds the option selected property.
func Selected(selected bool) Attr { return attr("selected", selected) }

// Autofocus requests focus for the element after the render pass.
func Autofocus(focus bool) Attr { return attr("autofocus", focus) }

// For sets the for attribute on labels.
func For(id string) Attr { return attr("for", id) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }
