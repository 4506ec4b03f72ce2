package vdom

import (
	"slices"
	"strconv"
)

// Diff returns the patches that turn prev into next.
//
// Elements of next that match one in prev take over its HID, so their DOM
// node and handlers survive. New elements are left without an HID; the
// caller assigns them (AssignHIDs) before encoding the patches.
func Diff(prev, next *VNode) []Patch {
	var d differ
	d.node(prev, next, "")
	return d.patches
}

type differ struct {
	patches []Patch
}

func (d *differ) emit(p Patch) { d.patches = append(d.patches, p) }

func (d *differ) setText(hid, text string) {
	d.emit(Patch{Op: PatchSetText, HID: hid, Value: text})
}

func (d *differ) replace(hid string, n *VNode) {
	d.emit(Patch{Op: PatchReplaceNode, HID: hid, Node: n})
}

func (d *differ) insert(parent string, i int, n *VNode) {
	d.emit(Patch{Op: PatchInsertNode, ParentID: parent, Index: i, Node: n})
}

func (d *differ) move(hid, parent string, i int) {
	d.emit(Patch{Op: PatchMoveNode, HID: hid, ParentID: parent, Index: i})
}

// remove drops an element, or clears the parent's text for a text child,
// which has no HID of its own.
func (d *differ) remove(n *VNode, parent string) {
	switch {
	case n.HID != "":
		d.emit(Patch{Op: PatchRemoveNode, HID: n.HID})
	case n.Kind == KindText && parent != "":
		d.setText(parent, "")
	}
}

// node compares prev and next. parent is the HID of the enclosing
// element; text patches target it because the client sets textContent.
func (d *differ) node(prev, next *VNode, parent string) {
	switch {
	case prev == nil:
		// inserted by the parent's child diff
	case next == nil:
		d.emit(Patch{Op: PatchRemoveNode, HID: prev.HID})
	case prev.Kind != next.Kind:
		if prev.HID != "" {
			d.replace(prev.HID, next)
		} else if next.Kind == KindText && parent != "" {
			d.setText(parent, next.Text)
		}
	case prev.Kind == KindText:
		if prev.Text != next.Text && parent != "" {
			d.setText(parent, next.Text)
		}
	case prev.Kind == KindElement:
		d.element(prev, next)
	default:
		d.children(prev.Children, next.Children, parent)
	}
}

func (d *differ) element(prev, next *VNode) {
	if prev.Tag != next.Tag || mixedTextChanged(prev, next) {
		d.replace(prev.HID, next)
		return
	}
	next.HID = prev.HID
	d.props(prev, next)
	d.children(prev.Children, next.Children, prev.HID)
}

// mixedTextChanged reports whether a text child changed inside an element
// with several children. Setting textContent there would wipe the
// siblings, so the element is replaced instead.
func mixedTextChanged(prev, next *VNode) bool {
	if len(prev.Children) < 2 && len(next.Children) < 2 {
		return false
	}
	if len(prev.Children) != len(next.Children) {
		return slices.ContainsFunc(prev.Children, isText) || slices.ContainsFunc(next.Children, isText)
	}
	for i, p := range prev.Children {
		n := next.Children[i]
		if (isText(p) || isText(n)) && (p.Kind != n.Kind || p.Text != n.Text) {
			return true
		}
	}
	return false
}

func isText(n *VNode) bool { return n.Kind == KindText }

// props patches attributes, then live properties. Keys are visited in
// sorted order so the patch list is deterministic.
func (d *differ) props(prev, next *VNode) {
	hid := prev.HID
	was, now := EffectiveAttrs(prev), EffectiveAttrs(next)

	for _, k := range SortedKeys(was) {
		if _, ok := now[k]; !ok {
			d.emit(Patch{Op: PatchRemoveAttr, HID: hid, Key: k})
		}
	}
	for _, k := range SortedKeys(now) {
		if v, ok := was[k]; !ok || v != now[k] {
			d.emit(Patch{Op: PatchSetAttr, HID: hid, Key: k, Value: now[k]})
		}
	}

	wasLive, nowLive := LiveProps(prev), LiveProps(next)
	for _, k := range SortedKeys(nowLive) {
		if v, ok := wasLive[k]; !ok || v != nowLive[k] {
			d.emit(Patch{Op: PatchSetValue, HID: hid, Key: k, Value: nowLive[k]})
		}
	}
}

func (d *differ) children(prev, next []*VNode, parent string) {
	if slices.ContainsFunc(prev, isKeyed) || slices.ContainsFunc(next, isKeyed) {
		d.keyed(prev, next, parent)
		return
	}
	for i := range max(len(prev), len(next)) {
		switch {
		case i >= len(prev):
			d.insert(parent, i, next[i])
		case i >= len(next):
			d.remove(prev[i], parent)
		default:
			d.node(prev[i], next[i], parent)
		}
	}
}

func isKeyed(n *VNode) bool { return n != nil && n.Key != "" }

// keyed reconciles a keyed child list by identity.
//
// Removals come first, in prev order. Moves and inserts follow in next
// order, each computed against a running copy of the live child list, so
// applying the patches in sequence yields exactly next.
func (d *differ) keyed(prev, next []*VNode, parent string) {
	byKey := make(map[string]*VNode, len(prev))
	for i, c := range prev {
		if k := childKey(c, i); byKey[k] == nil {
			byKey[k] = c
		}
	}

	// Each prev child pairs with at most one next child.
	match := make(map[*VNode]*VNode, len(next))
	kept := make(map[*VNode]bool, len(next))
	for i, c := range next {
		if p := byKey[childKey(c, i)]; p != nil && !kept[p] {
			match[c] = p
			kept[p] = true
		}
	}

	live := make([]*VNode, 0, max(len(prev), len(next)))
	for _, c := range prev {
		if kept[c] {
			live = append(live, c)
		} else {
			d.remove(c, parent)
		}
	}

	for i, c := range next {
		p, ok := match[c]
		if !ok {
			d.insert(parent, i, c)
			live = slices.Insert(live, min(i, len(live)), c)
			continue
		}
		if j := slices.Index(live, p); j != i {
			d.move(p.HID, parent, i)
			live = slices.Delete(live, j, j+1)
			live = slices.Insert(live, min(i, len(live)), p)
		}
		d.node(p, c, parent)
	}
}

// childKey returns the child's key. Unkeyed children in a keyed list get a
// positional key that cannot collide with a real one.
func childKey(n *VNode, i int) string {
	if n.Key != "" {
		return n.Key
	}
	return "\x00" + strconv.Itoa(i)
}
