package vdom

import (
	"strconv"
	"testing"
)

// render builds a tree and assigns HIDs the way a session does.
func render(gen *HIDGenerator, node *VNode) *VNode {
	AssignHIDs(node, gen)
	return node
}

func keyedList(keys ...int) *VNode {
	return Ul(For(keys, strconv.Itoa, func(k int) *VNode {
		return Li(Textf("row %d", k))
	}))
}

// applyOrder replays keyed child patches on a list of HIDs.
func applyOrder(t *testing.T, live []string, patches []Patch, nodes map[string]string) []string {
	t.Helper()
	for _, p := range patches {
		switch p.Op {
		case PatchRemoveNode:
			idx := -1
			for i, h := range live {
				if h == p.HID {
					idx = i
				}
			}
			if idx < 0 {
				t.Fatalf("remove of unknown HID %s", p.HID)
			}
			live = append(live[:idx], live[idx+1:]...)
		case PatchMoveNode:
			idx := -1
			for i, h := range live {
				if h == p.HID {
					idx = i
				}
			}
			if idx < 0 {
				t.Fatalf("move of unknown HID %s", p.HID)
			}
			live = append(live[:idx], live[idx+1:]...)
			live = append(live[:p.Index], append([]string{p.HID}, live[p.Index:]...)...)
		case PatchInsertNode:
			h := "new:" + p.Node.Key
			nodes[h] = p.Node.Key
			live = append(live[:p.Index], append([]string{h}, live[p.Index:]...)...)
		}
	}
	return live
}

func TestDiffBothNil(t *testing.T) {
	if patches := Diff(nil, nil); len(patches) != 0 {
		t.Errorf("Expected 0 patches, got %d", len(patches))
	}
}

func TestDiffNodeRemoved(t *testing.T) {
	prev := Div()
	prev.HID = "h1"

	patches := Diff(prev, nil)

	if len(patches) != 1 {
		t.Fatalf("Expected 1 patch, got %d", len(patches))
	}
	if patches[0].Op != PatchRemoveNode || patches[0].HID != "h1" {
		t.Errorf("got %+v, want RemoveNode h1", patches[0])
	}
}

func TestDiffTextChangeTargetsParent(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, Button(Text("1")))
	next := Button(Text("2"))

	patches := Diff(prev, next)

	if len(patches) != 1 {
		t.Fatalf("Expected 1 patch, got %d: %+v", len(patches), patches)
	}
	if patches[0].Op != PatchSetText || patches[0].HID != prev.HID || patches[0].Value != "2" {
		t.Errorf("got %+v", patches[0])
	}
	if next.HID != prev.HID {
		t.Errorf("next HID = %q, want %q", next.HID, prev.HID)
	}
}

func TestDiffTextUnchanged(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, P(Text("Hello")))
	next := P(Text("Hello"))

	if patches := Diff(prev, next); len(patches) != 0 {
		t.Errorf("Expected 0 patches for unchanged text, got %d", len(patches))
	}
}

func TestDiffMixedTextReplacesElement(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, P(Text("a"), Span(Text("b"))))
	next := P(Text("c"), Span(Text("b")))

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("expected single ReplaceNode, got %+v", patches)
	}
}

func TestDiffTagChange(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, Div(Span()))
	next := Div(P())

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("expected ReplaceNode, got %+v", patches)
	}
	if patches[0].HID != prev.Children[0].HID {
		t.Errorf("replace target = %s, want %s", patches[0].HID, prev.Children[0].HID)
	}
}

func TestDiffAttributes(t *testing.T) {
	gen := NewHIDGenerator()

	tests := []struct {
		name string
		prev *VNode
		next *VNode
		want []Patch
	}{
		{
			name: "class added",
			prev: Button(),
			next: Button(ClassIf(true, "red")),
			want: []Patch{{Op: PatchSetAttr, Key: "class", Value: "red"}},
		},
		{
			name: "class removed",
			prev: Button(ClassIf(true, "red")),
			next: Button(ClassIf(false, "red")),
			want: []Patch{{Op: PatchRemoveAttr, Key: "class"}},
		},
		{
			name: "value changed",
			prev: Progress(Max(50), ProgressValue(1)),
			next: Progress(Max(50), ProgressValue(2)),
			want: []Patch{{Op: PatchSetAttr, Key: "value", Value: "2"}},
		},
		{
			name: "live property",
			prev: Input(Prop("value", "Cont")),
			next: Input(Prop("value", "Controlled")),
			want: []Patch{{Op: PatchSetValue, Key: "value", Value: "Controlled"}},
		},
		{
			name: "unchanged",
			prev: Input(Type("text"), Value("x")),
			next: Input(Type("text"), Value("x")),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := render(gen, tt.prev)
			patches := Diff(prev, tt.next)

			if len(patches) != len(tt.want) {
				t.Fatalf("got %d patches %+v, want %d", len(patches), patches, len(tt.want))
			}
			for i, want := range tt.want {
				got := patches[i]
				if got.Op != want.Op || got.Key != want.Key || got.Value != want.Value {
					t.Errorf("patch %d = %+v, want %+v", i, got, want)
				}
				if got.HID != prev.HID {
					t.Errorf("patch %d HID = %s, want %s", i, got.HID, prev.HID)
				}
			}
		})
	}
}

func TestDiffUnkeyedAppend(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, Ul(Li(Text("a"))))
	next := Ul(Li(Text("a")), Li(Text("b")))

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchInsertNode {
		t.Fatalf("expected InsertNode, got %+v", patches)
	}
	if patches[0].ParentID != prev.HID || patches[0].Index != 1 {
		t.Errorf("insert at %s[%d], want %s[1]", patches[0].ParentID, patches[0].Index, prev.HID)
	}
	if next.Children[1].HID != "" {
		t.Error("inserted node should be left for AssignHIDs")
	}
}

func TestDiffKeyedRemoveMiddleKeepsHIDs(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, keyedList(0, 1, 2, 3, 4))
	hids := map[string]string{}
	for _, c := range prev.Children {
		hids[c.Key] = c.HID
	}

	next := keyedList(0, 1, 3, 4)
	patches := Diff(prev, next)

	if len(patches) != 1 {
		t.Fatalf("expected exactly one patch, got %+v", patches)
	}
	if patches[0].Op != PatchRemoveNode || patches[0].HID != hids["2"] {
		t.Errorf("got %+v, want RemoveNode %s", patches[0], hids["2"])
	}
	for _, c := range next.Children {
		if c.HID != hids[c.Key] {
			t.Errorf("row %s HID = %s, want %s", c.Key, c.HID, hids[c.Key])
		}
	}
}

func TestDiffKeyedAppendAfterRemove(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, keyedList(0, 1, 3, 4, 5))
	next := keyedList(0, 1, 3, 4, 5, 6)

	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchInsertNode || patches[0].Index != 5 {
		t.Fatalf("expected InsertNode at 5, got %+v", patches)
	}
	if patches[0].Node.Key != "6" {
		t.Errorf("inserted key = %s, want 6", patches[0].Node.Key)
	}
}

func TestDiffKeyedSequentialApplication(t *testing.T) {
	tests := []struct {
		name string
		prev []int
		next []int
	}{
		{"reverse", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}},
		{"rotate", []int{1, 2, 3, 4}, []int{2, 3, 4, 1}},
		{"remove and insert", []int{1, 2, 3}, []int{4, 1, 3, 5}},
		{"swap ends", []int{1, 2, 3, 4, 5}, []int{5, 2, 3, 4, 1}},
		{"clear", []int{1, 2, 3}, nil},
		{"from empty", nil, []int{1, 2}},
		{"interleave", []int{1, 3, 5}, []int{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewHIDGenerator()
			prev := render(gen, keyedList(tt.prev...))
			keyOf := map[string]string{}
			live := make([]string, 0, len(prev.Children))
			for _, c := range prev.Children {
				keyOf[c.HID] = c.Key
				live = append(live, c.HID)
			}

			next := keyedList(tt.next...)
			patches := Diff(prev, next)
			live = applyOrder(t, live, patches, keyOf)

			if len(live) != len(tt.next) {
				t.Fatalf("live has %d rows, want %d", len(live), len(tt.next))
			}
			for i, k := range tt.next {
				if keyOf[live[i]] != strconv.Itoa(k) {
					t.Errorf("position %d has key %s, want %d", i, keyOf[live[i]], k)
				}
			}
		})
	}
}

func TestDiffKeyedRemovalsComeFirst(t *testing.T) {
	gen := NewHIDGenerator()
	prev := render(gen, keyedList(1, 2, 3))
	next := keyedList(3, 1, 9)

	patches := Diff(prev, next)

	seenOther := false
	for _, p := range patches {
		if p.Op == PatchRemoveNode && seenOther {
			t.Fatalf("RemoveNode after other patches: %+v", patches)
		}
		if p.Op != PatchRemoveNode {
			seenOther = true
		}
	}
}

func TestDiffKeyedRowContentChange(t *testing.T) {
	gen := NewHIDGenerator()
	row := func(v int) func(int) *VNode {
		return func(k int) *VNode {
			if k == 1 {
				return Li(Button(Textf("%d", v)))
			}
			return Li(Button(Textf("%d", k)))
		}
	}
	prev := render(gen, Ul(For([]int{0, 1, 2}, strconv.Itoa, row(2))))
	button := prev.Children[1].Children[0]

	next := Ul(For([]int{0, 1, 2}, strconv.Itoa, row(3)))
	patches := Diff(prev, next)

	if len(patches) != 1 || patches[0].Op != PatchSetText || patches[0].HID != button.HID {
		t.Fatalf("expected SetText on %s, got %+v", button.HID, patches)
	}
}
