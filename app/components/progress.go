package components

import (
	"github.com/vango-dev/tour/pkg/vango"
	. "github.com/vango-dev/tour/pkg/vdom"
)

// DefaultProgressMax is the Max a ProgressBar uses when none is given.
const DefaultProgressMax = 100

// ProgressBarProps configures a ProgressBar.
type ProgressBarProps struct {
	// Max is the value of a full bar. Zero selects DefaultProgressMax.
	Max uint16

	// Progress is read on every render. Pass a signal, a derived reader or
	// vango.Static for a fixed value.
	Progress vango.Reader[int]
}

// ProgressBar shows progress toward a goal as a <progress> element
// followed by a line break. The value is not clamped to [0, Max].
func ProgressBar(props ProgressBarProps) *VNode {
	limit := props.Max
	if limit == 0 {
		limit = DefaultProgressMax
	}

	progress := props.Progress
	if progress == nil {
		progress = vango.Static(0)
	}

	return Fragment(
		Progress(Max(int(limit)), ProgressValue(progress.Get())),
		Br(),
	)
}
