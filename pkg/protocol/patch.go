package protocol

import "github.com/vango-dev/tour/pkg/vdom"

// Patch is the wire form of a vdom.Patch.
type Patch struct {
	Op     vdom.PatchOp `json:"op"`
	HID    string       `json:"hid,omitempty"`
	Key    string       `json:"key,omitempty"`
	Value  string       `json:"value,omitempty"`
	Parent string       `json:"parent,omitempty"`
	Index  int          `json:"index,omitempty"`
	Node   *VNode       `json:"node,omitempty"`
}

// PatchesFrame carries the patches produced by one event.
type PatchesFrame struct {
	Seq     uint64  `json:"seq"`
	Patches []Patch `json:"patches"`
}

// FromVDOM converts diff output to wire patches. Inserted and replacement
// nodes must have their HIDs assigned.
func FromVDOM(patches []vdom.Patch) []Patch {
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		out = append(out, Patch{
			Op:     p.Op,
			HID:    p.HID,
			Key:    p.Key,
			Value:  p.Value,
			Parent: p.ParentID,
			Index:  p.Index,
			Node:   EncodeVNode(p.Node),
		})
	}
	return out
}

// EncodePatches encodes a patch set as a complete frame.
func EncodePatches(pf *PatchesFrame) ([]byte, error) {
	return marshalFrame(FramePatches, pf)
}

// DecodePatches decodes a Patches frame.
func DecodePatches(f *Frame) (*PatchesFrame, error) {
	var pf PatchesFrame
	if err := unmarshalFrame(f, FramePatches, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}
