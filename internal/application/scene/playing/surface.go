package playing

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sheet is a horizontal strip of equally sized frames
type Sheet struct {
	Image  *ebiten.Image
	FrameW int
	FrameH int
}

// Surface draws entities onto an ebiten image
type Surface struct {
	dst    *ebiten.Image
	sheets map[string]Sheet
}

// NewSurface wraps dst. sheets may be nil, in which case every entity
// falls back to its placeholder colour.
func NewSurface(dst *ebiten.Image, sheets map[string]Sheet) *Surface {
	return &Surface{dst: dst, sheets: sheets}
}

// FillRect implements entity.Surface
func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawSprite implements entity.Surface
func (s *Surface) DrawSprite(sheet string, frame int, x, y float64, flip bool, alpha float64) bool {
	sh, ok := s.sheets[sheet]
	if !ok || sh.Image == nil || sh.FrameW <= 0 || sh.FrameH <= 0 {
		return false
	}
	cols := sh.Image.Bounds().Dx() / sh.FrameW
	if cols <= 0 {
		return false
	}
	frame %= cols
	if frame < 0 {
		frame += cols
	}
	src := image.Rect(frame*sh.FrameW, 0, (frame+1)*sh.FrameW, sh.FrameH)

	op := &ebiten.DrawImageOptions{}
	if flip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(sh.FrameW), 0)
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.dst.DrawImage(sh.Image.SubImage(src).(*ebiten.Image), op)
	return true
}
