package embedded

import (
	_ "embed"
)

//go:embed layout.txt
var layout []byte

// Layout returns the embedded default MW320 flash layout description.
func Layout() []byte {
	return layout
}
