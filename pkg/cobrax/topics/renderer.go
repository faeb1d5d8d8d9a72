package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. ext is the topic file
// extension, including the dot.
type Renderer interface {
	Render(content, ext string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (PlainRenderer) Render(content, _ string) string { return content }

// GlamourRenderer renders markdown topics for the terminal
type GlamourRenderer struct {
	Width int // 0 leaves glamour's default
}

// Render falls back to the raw content on any rendering error.
func (r GlamourRenderer) Render(content, ext string) string {
	if ext != ".md" {
		return content
	}
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
