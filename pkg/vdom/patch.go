package vdom

// PatchOp is a DOM operation the client applies.
type PatchOp uint8

const (
	PatchSetText     PatchOp = iota + 1 // replace the element's text
	PatchSetAttr                        // Key=Value
	PatchRemoveAttr                     // Key
	PatchInsertNode                     // Node into ParentID at Index
	PatchRemoveNode                     // HID
	PatchMoveNode                       // HID into ParentID at Index
	PatchReplaceNode                    // HID by Node
	PatchSetValue                       // live property Key=Value
)

var patchOpNames = [...]string{
	PatchSetText:     "SetText",
	PatchSetAttr:     "SetAttr",
	PatchRemoveAttr:  "RemoveAttr",
	PatchInsertNode:  "InsertNode",
	PatchRemoveNode:  "RemoveNode",
	PatchMoveNode:    "MoveNode",
	PatchReplaceNode: "ReplaceNode",
	PatchSetValue:    "SetValue",
}

func (op PatchOp) String() string {
	if int(op) < len(patchOpNames) && patchOpNames[op] != "" {
		return patchOpNames[op]
	}
	return "Unknown"
}

// Patch is one step of turning the client's DOM into the new render.
//
// Patches apply in order. For InsertNode and MoveNode, Index is the child
// position after all earlier patches, and for a move, after the node has
// been detached.
type Patch struct {
	Op       PatchOp
	HID      string // target element
	Key      string // attribute or property name
	Value    string
	Node     *VNode // inserted or replacement subtree
	Index    int
	ParentID string // HID of the parent for inserts and moves
}
