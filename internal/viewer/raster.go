package viewer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PixelsPerCell is how many image pixels one terminal column covers at zoom
// 1.0. A row is drawn as two half-block pixels, so it covers twice as many.
const PixelsPerCell = 4

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// shade ramp used when colors are disabled, sparsest first
var shades = []rune(" .:-=+*#%@")

// ContainerSize converts a terminal area to the pixel size the viewer
// transforms against.
func ContainerSize(cols, rows int) Size {
	return Size{W: float64(cols * PixelsPerCell), H: float64(rows * 2 * PixelsPerCell)}
}

// CellPoint converts a terminal cell coordinate to a screen pixel position
func CellPoint(col, row int) Point {
	return Point{X: float64(col * PixelsPerCell), Y: float64(row * 2 * PixelsPerCell)}
}

// NaturalSize returns the image size in pixels
func NaturalSize(img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// Render draws img into a cols x rows terminal area with the transform in
// st applied around the area's center. When useColor is false a luminance
// ramp replaces the half-block colors.
func Render(img image.Image, st State, cols, rows int, useColor bool) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	zoom := st.Zoom
	if zoom <= 0 {
		zoom = 1.0
	}
	container := ContainerSize(cols, rows)
	natural := NaturalSize(img)
	bounds := img.Bounds()

	sample := func(sx, sy int) (color.Color, bool) {
		px := float64(sx*PixelsPerCell) + PixelsPerCell/2
		py := float64(sy*PixelsPerCell) + PixelsPerCell/2
		ix := (px-container.W/2-st.Pan.X)/zoom + natural.W/2
		iy := (py-container.H/2-st.Pan.Y)/zoom + natural.H/2
		if ix < 0 || iy < 0 || ix >= natural.W || iy >= natural.H {
			return nil, false
		}
		c := img.At(bounds.Min.X+int(ix), bounds.Min.Y+int(iy))
		if _, _, _, a := c.RGBA(); a < 0x4000 {
			return nil, false
		}
		return c, true
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, hasTop := sample(col, row*2)
			bottom, hasBottom := sample(col, row*2+1)
			if useColor {
				b.WriteString(halfBlock(top, hasTop, bottom, hasBottom))
			} else {
				b.WriteRune(shadeFor(top, hasTop, bottom, hasBottom))
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func halfBlock(top color.Color, hasTop bool, bottom color.Color, hasBottom bool) string {
	if !hasTop && !hasBottom {
		return " "
	}
	if !hasTop {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex(bottom))).Render(lowerHalf)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(top)))
	if hasBottom {
		style = style.Background(lipgloss.Color(hex(bottom)))
	}
	return style.Render(upperHalf)
}

func shadeFor(top color.Color, hasTop bool, bottom color.Color, hasBottom bool) rune {
	var sum float64
	var n int
	for _, p := range []struct {
		c  color.Color
		ok bool
	}{{top, hasTop}, {bottom, hasBottom}} {
		if p.ok {
			sum += luminance(p.c)
			n++
		}
	}
	if n == 0 {
		return ' '
	}
	// dark ink on a light diagram background reads as dense shading
	l := 1 - sum/float64(n)
	idx := int(l * float64(len(shades)-1))
	return shades[idx]
}

func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
