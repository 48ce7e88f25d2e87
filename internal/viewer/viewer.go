// Package viewer implements the zoom and pan state machine used to inspect
// automaton diagrams. Each Viewer owns its state; two viewers never share
// zoom, pan or drag data.
package viewer

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/yildizm/lrview/internal/result"
)

const (
	MinZoom   = 0.1
	MaxZoom   = 5.0
	ZoomStep  = 1.2
	WheelStep = 1.1

	// DefaultTitle names downloads of untitled diagrams
	DefaultTitle = "automaton"
)

// ErrNoImage is returned by Download when the viewer has nothing to save
var ErrNoImage = errors.New("viewer has no image")

// Point is a position in screen pixels
type Point struct {
	X, Y float64
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width and height in pixels
type Size struct {
	W, H float64
}

// Known reports whether both dimensions are positive
func (s Size) Known() bool {
	return s.W > 0 && s.H > 0
}

// State is the transform applied to the image
type State struct {
	Zoom       float64
	Pan        Point
	Dragging   bool
	DragAnchor Point
}

// InitialState is the state of a freshly opened or closed viewer
func InitialState() State {
	return State{Zoom: 1.0}
}

// Option configures a Viewer
type Option func(*Viewer)

// WithKeyboardHooks sets callbacks run when the keyboard scope is attached
// and detached.
func WithKeyboardHooks(attach, detach func()) Option {
	return func(v *Viewer) {
		v.keys = NewSubscription("keyboard", attach, detach)
	}
}

// WithPointerHooks sets callbacks run when the drag scope is attached and
// detached.
func WithPointerHooks(attach, detach func()) Option {
	return func(v *Viewer) {
		v.pointer = NewSubscription("pointer", attach, detach)
	}
}

// Viewer is a modal image viewer
type Viewer struct {
	title   string
	image   *result.ImageRef
	onClose func()

	open   bool
	state  State
	fitted bool

	keys    *Subscription
	pointer *Subscription
}

// New creates a closed viewer for img. onClose is called after every close.
func New(title string, img *result.ImageRef, onClose func(), opts ...Option) *Viewer {
	v := &Viewer{
		title:   title,
		image:   img,
		onClose: onClose,
		state:   InitialState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.keys == nil {
		v.keys = NewSubscription("keyboard", nil, nil)
	}
	if v.pointer == nil {
		v.pointer = NewSubscription("pointer", nil, nil)
	}
	return v
}

// Title returns the display title
func (v *Viewer) Title() string { return v.title }

// Image returns the displayed image reference
func (v *Viewer) Image() *result.ImageRef { return v.image }

// IsOpen reports whether the viewer is shown
func (v *Viewer) IsOpen() bool { return v.open }

// State returns a copy of the current transform
func (v *Viewer) State() State { return v.state }

// Keyboard returns the keyboard scope
func (v *Viewer) Keyboard() *Subscription { return v.keys }

// Pointer returns the drag scope
func (v *Viewer) Pointer() *Subscription { return v.pointer }

// Open shows the viewer with a reset transform
func (v *Viewer) Open() {
	if v.open {
		return
	}
	v.open = true
	v.state = InitialState()
	v.fitted = false
	v.keys.Acquire()
}

// Close resets zoom, pan and dragging, hides the viewer and notifies the
// owner.
func (v *Viewer) Close() {
	if !v.open {
		return
	}
	v.state = InitialState()
	v.fitted = false
	v.pointer.Release()
	v.keys.Release()
	v.open = false
	if v.onClose != nil {
		v.onClose()
	}
}

// ZoomIn multiplies the zoom by ZoomStep
func (v *Viewer) ZoomIn() {
	if v.open {
		v.setZoom(v.state.Zoom * ZoomStep)
	}
}

// ZoomOut divides the zoom by ZoomStep
func (v *Viewer) ZoomOut() {
	if v.open {
		v.setZoom(v.state.Zoom / ZoomStep)
	}
}

// Fit restores zoom 1.0 and clears the pan offset
func (v *Viewer) Fit() {
	if !v.open {
		return
	}
	v.state.Zoom = 1.0
	v.state.Pan = Point{}
}

// Wheel applies wheel ticks; positive ticks scroll up and zoom in.
func (v *Viewer) Wheel(ticks int) {
	if !v.open || ticks == 0 {
		return
	}
	factor := math.Pow(WheelStep, float64(ticks))
	v.setZoom(v.state.Zoom * factor)
}

// PointerDown starts a drag at p. Presses at zoom 1.0 or below are ignored.
func (v *Viewer) PointerDown(p Point) bool {
	if !v.open || v.state.Zoom <= 1.0 {
		return false
	}
	v.state.Dragging = true
	v.state.DragAnchor = p.Sub(v.state.Pan)
	v.pointer.Acquire()
	return true
}

// PointerMove pans the image while dragging
func (v *Viewer) PointerMove(p Point) bool {
	if !v.open || !v.state.Dragging {
		return false
	}
	v.state.Pan = p.Sub(v.state.DragAnchor)
	return true
}

// PointerUp ends a drag
func (v *Viewer) PointerUp() {
	if !v.state.Dragging {
		return
	}
	v.state.Dragging = false
	v.pointer.Release()
}

// HandleKey applies a keyboard shortcut and reports whether it was used.
// Keys are ignored unless the keyboard scope is attached.
func (v *Viewer) HandleKey(key string) bool {
	if !v.open || !v.keys.Active() {
		return false
	}
	switch key {
	case "esc":
		v.Close()
	case "+", "=":
		v.ZoomIn()
	case "-":
		v.ZoomOut()
	case "0":
		v.Fit()
	default:
		return false
	}
	return true
}

// ImageLoaded applies the one-time auto-fit once the natural image size is
// known. Images larger than the container are scaled down; smaller images
// are never scaled up. It reports whether the zoom changed.
func (v *Viewer) ImageLoaded(natural, container Size) bool {
	if !v.open || v.fitted || !natural.Known() || !container.Known() {
		return false
	}
	v.fitted = true
	if natural.W <= container.W && natural.H <= container.H {
		return false
	}
	scale := math.Min(math.Min(container.W/natural.W, container.H/natural.H), 1.0)
	if scale >= 1.0 {
		return false
	}
	v.setZoom(scale)
	return true
}

// FileName is the name Download writes to
func (v *Viewer) FileName() string {
	name := strings.TrimSpace(v.title)
	if name == "" {
		name = DefaultTitle
	}
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	return name + ".png"
}

// Download writes the original image bytes into dir. Zoom and pan do not
// affect the output. It returns the written path.
func (v *Viewer) Download(dir string) (string, error) {
	if v.image == nil {
		return "", ErrNoImage
	}
	data, err := v.image.Bytes()
	if err != nil {
		return "", fmt.Errorf("read %s image: %w", v.FileName(), err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	path := filepath.Join(dir, v.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (v *Viewer) setZoom(z float64) {
	v.state.Zoom = clamp(z, MinZoom, MaxZoom)
}

func clamp(z, lo, hi float64) float64 {
	if math.IsNaN(z) {
		return lo
	}
	return math.Max(lo, math.Min(hi, z))
}
