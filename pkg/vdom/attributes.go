package vdom

import (
	"strconv"
	"strings"
)

// Attribute sets an arbitrary attribute. A bool value renders as a boolean
// attribute: present when true, omitted when false.
func Attribute(key string, value any) Attr { return Attr{Key: key, Value: value} }

func ID(id string) Attr { return Attribute("id", id) }

func Name(name string) Attr { return Attribute("name", name) }

func Type(t string) Attr { return Attribute("type", t) }

func Placeholder(text string) Attr { return Attribute("placeholder", text) }

// Data sets data-<key>.
func Data(key, value string) Attr { return Attribute("data-"+key, value) }

func Disabled() Attr { return Attribute("disabled", true) }

func Max(n int) Attr { return Attribute("max", strconv.Itoa(n)) }

// ProgressValue is the value attribute of a <progress>.
func ProgressValue(n int) Attr { return Attribute("value", strconv.Itoa(n)) }

// Class joins classes with spaces. Several Class attributes on one element
// accumulate.
func Class(classes ...string) Attr {
	return Attribute("class", strings.Join(classes, " "))
}

// ClassIf adds class c while on holds.
//
//	Button(ClassIf(count.Get()%2 == 1, "red"), Text("Click me"))
func ClassIf(on bool, c string) Attr { return when(on, Class(c)) }

// Value is the value attribute, which the browser only reads as the
// field's initial value. Later edits live on the element; read them
// through a NodeRef.
func Value(initial string) Attr { return Attribute("value", initial) }

// Prop binds a live DOM property. The first paint renders it as the
// attribute of the same name; after that the client sets the property on
// the element, so the field follows the server.
//
//	Input(Type("text"), Prop("value", name.Get()))
func Prop(name string, v any) Attr { return Attribute("prop:"+name, v) }

// when yields a, or the zero Attr that elements skip.
func when(on bool, a Attr) Attr {
	if !on {
		return Attr{}
	}
	return a
}
