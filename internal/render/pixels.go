package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// fillRGBA writes pix into buf as opaque 8-bit RGBA bytes.
func fillRGBA(buf []byte, pix []colorful.Color) {
	for i, c := range pix {
		r, g, b := c.Clamped().RGB255()
		base := i * 4
		buf[base+0] = r
		buf[base+1] = g
		buf[base+2] = b
		buf[base+3] = 0xff
	}
}

// fillSolid sets every pixel to c.
func fillSolid(pix []colorful.Color, c colorful.Color) {
	for i := range pix {
		pix[i] = c
	}
}
