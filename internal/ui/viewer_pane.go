package ui

import (
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/logger"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
	"github.com/yildizm/lrview/internal/viewer"
)

// viewerHeaderLines is the number of lines drawn above the raster
const viewerHeaderLines = 2

// viewerPane binds one viewer.Viewer to terminal events. The decoded image
// is cached for the lifetime of the pane.
type viewerPane struct {
	viewer    *viewer.Viewer
	img       image.Image
	decodeErr error
	decoded   bool
}

func newViewerPane(title string, ref *result.ImageRef, onClose func(), log *logger.Logger) *viewerPane {
	scope := func(name, event string) func() {
		return func() {
			log.DebugWithFields("viewer scope "+event, []logger.Field{logger.F("viewer", title), logger.F("scope", name)})
		}
	}
	v := viewer.New(title, ref, onClose,
		viewer.WithKeyboardHooks(scope("keyboard", "attached"), scope("keyboard", "detached")),
		viewer.WithPointerHooks(scope("pointer", "attached"), scope("pointer", "detached")),
	)
	return &viewerPane{viewer: v}
}

func (p *viewerPane) image() (image.Image, error) {
	if !p.decoded {
		p.decoded = true
		if p.viewer.Image() == nil {
			p.decodeErr = viewer.ErrNoImage
		} else {
			p.img, p.decodeErr = p.viewer.Image().Decode()
		}
	}
	return p.img, p.decodeErr
}

// open shows the viewer and applies the one-time fit for the pane size
func (p *viewerPane) open(cols, rows int) {
	p.viewer.Open()
	if img, err := p.image(); err == nil {
		p.viewer.ImageLoaded(viewer.NaturalSize(img), viewer.ContainerSize(cols, rows))
	}
}

// handleKey reports whether the key was consumed by the viewer
func (p *viewerPane) handleKey(key string) bool {
	return p.viewer.HandleKey(key)
}

// handleMouse maps terminal mouse events to pointer and wheel operations
func (p *viewerPane) handleMouse(msg tea.MouseMsg) bool {
	if !p.viewer.IsOpen() {
		return false
	}
	point := viewer.CellPoint(msg.X, msg.Y-viewerHeaderLines)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.viewer.Wheel(1)
			return true
		case tea.MouseButtonWheelDown:
			p.viewer.Wheel(-1)
			return true
		case tea.MouseButtonLeft:
			return p.viewer.PointerDown(point)
		}
	case tea.MouseActionMotion:
		if p.viewer.Pointer().Active() {
			return p.viewer.PointerMove(point)
		}
	case tea.MouseActionRelease:
		if p.viewer.Pointer().Active() {
			p.viewer.PointerUp()
			return true
		}
	}
	return false
}

func (p *viewerPane) render(cols, rows int) string {
	styles := theme.GetStyles()
	st := p.viewer.State()

	title := theme.Render(styles.Title, emoji.GetEmoji("diagram")+" "+p.viewer.Title())
	info := fmt.Sprintf("zoom %3.0f%%", st.Zoom*100)
	if st.Dragging {
		info += "  dragging"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", theme.Render(styles.Muted, info))

	img, err := p.image()
	if err != nil {
		return header + "\n\n" + theme.Render(styles.Error, fmt.Sprintf("cannot display image: %v", err))
	}
	return header + "\n\n" + viewer.Render(img, st, cols, rows, !theme.IsColorDisabled())
}
