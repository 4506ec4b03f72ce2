package vdom

// void lists the tags that never have children or a closing tag.
var void = map[string]struct{}{
	"br": {}, "hr": {}, "img": {}, "input": {}, "meta": {}, "link": {},
	"area": {}, "base": {}, "col": {}, "embed": {}, "source": {}, "track": {}, "wbr": {},
}

// IsVoidElement reports whether tag is a void element.
func IsVoidElement(tag string) bool {
	_, ok := void[tag]
	return ok
}

// El builds an element. Each argument is one of: nil (skipped), Attr,
// []Attr, EventHandler, or a child accepted by Fragment (*VNode, []*VNode,
// string, Component). Fragments are flattened into the element.
func El(tag string, args ...any) *VNode {
	n := &VNode{Kind: KindElement, Tag: tag, Props: Props{}}
	for _, arg := range args {
		switch a := arg.(type) {
		case Attr:
			n.setAttr(a)
		case []Attr:
			for _, x := range a {
				n.setAttr(x)
			}
		case EventHandler:
			if a.Handler != nil {
				n.Props[a.Event] = a.Handler
			}
		default:
			n.addChild(a)
		}
	}
	return n
}

func (v *VNode) setAttr(a Attr) {
	s, isString := a.Value.(string)
	switch {
	case a.Key == "":
	case a.Key == "key":
		if isString {
			v.Key = s
		}
	case a.Key == "class" && isString:
		if prev, _ := v.Props["class"].(string); prev != "" && s != "" {
			s = prev + " " + s
		}
		if s != "" {
			v.Props["class"] = s
		}
	default:
		v.Props[a.Key] = a.Value
	}
}

func (v *VNode) appendChild(child *VNode) {
	switch {
	case child == nil:
	case child.Kind == KindFragment:
		for _, c := range child.Children {
			v.appendChild(c)
		}
	default:
		v.Children = append(v.Children, child)
	}
}

func Main(args ...any) *VNode     { return El("main", args...) }
func Section(args ...any) *VNode  { return El("section", args...) }
func H1(args ...any) *VNode       { return El("h1", args...) }
func H2(args ...any) *VNode       { return El("h2", args...) }
func Div(args ...any) *VNode      { return El("div", args...) }
func P(args ...any) *VNode        { return El("p", args...) }
func Span(args ...any) *VNode     { return El("span", args...) }
func Ul(args ...any) *VNode       { return El("ul", args...) }
func Li(args ...any) *VNode       { return El("li", args...) }
func Br(args ...any) *VNode       { return El("br", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Progress(args ...any) *VNode { return El("progress", args...) }

// Form elements.

func Form(args ...any) *VNode  { return El("form", args...) }
func Input(args ...any) *VNode { return El("input", args...) }
func Label(args ...any) *VNode { return El("label", args...) }
