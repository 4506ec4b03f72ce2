package render

// inline lists the tags that pretty output keeps on their parent's line.
// The widgets put buttons next to their labels and a <br> after each
// progress bar; breaking those onto new lines would add visible spaces.
var inline = map[string]struct{}{
	"a": {}, "b": {}, "br": {}, "button": {}, "code": {}, "em": {},
	"i": {}, "label": {}, "progress": {}, "small": {}, "span": {}, "strong": {},
}

func isInlineElement(tag string) bool {
	_, ok := inline[tag]
	return ok
}
