package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ersonp/lineage/internal/domain/ports"
)

// Renderer is a mock implementation of ports.Renderer. It writes the
// format name and records each call.
type Renderer struct {
	mu      sync.Mutex
	Err     error
	Formats []ports.ImageFormat
	Scenes  []*ports.Scene
}

// NewRenderer creates a new mock Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render records the call and writes a small marker.
func (m *Renderer) Render(_ context.Context, scene *ports.Scene, format ports.ImageFormat, w io.Writer) error {
	m.mu.Lock()
	m.Formats = append(m.Formats, format)
	m.Scenes = append(m.Scenes, scene)
	err := m.Err
	m.mu.Unlock()

	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s:%d", format, len(scene.Members))
	return err
}

// Calls returns the number of Render calls.
func (m *Renderer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Formats)
}
