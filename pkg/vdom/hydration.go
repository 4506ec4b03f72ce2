package vdom

import (
	"strconv"
	"sync/atomic"
)

// HIDGenerator hands out hydration IDs "h1", "h2", ... A session keeps one
// for its whole life, so an element created by a later render never reuses
// the ID of one that was removed.
type HIDGenerator struct {
	n atomic.Uint32
}

// NewHIDGenerator creates a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return new(HIDGenerator)
}

// Next returns a fresh ID.
func (g *HIDGenerator) Next() string {
	return "h" + strconv.FormatUint(uint64(g.n.Add(1)), 10)
}

// Current returns how many IDs have been handed out.
func (g *HIDGenerator) Current() uint32 {
	return g.n.Load()
}

// AssignHIDs gives an ID to every element that lacks one. Elements that
// Diff matched to the previous tree already carry their old ID.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) {
		if n.Kind == KindElement && n.HID == "" {
			n.HID = gen.Next()
		}
	})
}

// Walk calls fn for node and each descendant in document order.
func Walk(node *VNode, fn func(*VNode)) {
	walk(node, func(n *VNode) bool {
		fn(n)
		return true
	})
}

// walk stops as soon as fn returns false.
func walk(node *VNode, fn func(*VNode) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	for _, c := range node.Children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// CollectHIDs indexes the tree's elements by HID.
func CollectHIDs(node *VNode) map[string]*VNode {
	byHID := make(map[string]*VNode)
	Walk(node, func(n *VNode) {
		if n.HID != "" {
			byHID[n.HID] = n
		}
	})
	return byHID
}

// FindByHID returns the node with the given HID, or nil.
func FindByHID(node *VNode, hid string) *VNode {
	var found *VNode
	walk(node, func(n *VNode) bool {
		if n.HID == hid {
			found = n
		}
		return found == nil
	})
	return found
}
