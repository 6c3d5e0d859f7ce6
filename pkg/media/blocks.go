package media

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
)

// renderBlocks draws the image with upper-half-block characters and
// 24-bit color, two vertical pixels per cell. Works on any terminal
// with true color support.
func renderBlocks(img image.Image) string {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return ""
	}
	px := toNRGBA(img)

	var b strings.Builder
	b.Grow(w * (h/2 + 1) * 24)
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteString("\x1b[0m\n")
		}
		for x := 0; x < w; x++ {
			top := px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
			switch {
			case y+1 >= h || px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1).A == 0:
				if top.A == 0 {
					b.WriteString("\x1b[0m ")
				} else {
					fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top.R, top.G, top.B)
				}
			case top.A == 0:
				bot := px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1)
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[49m▄", bot.R, bot.G, bot.B)
			default:
				bot := px.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y+1)
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
					top.R, top.G, top.B, bot.R, bot.G, bot.B)
			}
		}
	}
	b.WriteString("\x1b[0m")
	return b.String()
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
