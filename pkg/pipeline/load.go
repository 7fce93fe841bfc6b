package pipeline

import (
	"github.com/matzehuels/gridtile/pkg/scene"
)

// Load reads and validates the scene at path.
func Load(path string) (*scene.Scene, error) {
	return scene.Load(path)
}

// Decode parses and validates scene data in the given format.
func Decode(data []byte, format string) (*scene.Scene, error) {
	return scene.Decode(data, format)
}
