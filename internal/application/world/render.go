package world

import (
	"image/color"

	"github.com/younwookim/luckie/internal/domain/collision"
	"github.com/younwookim/luckie/internal/domain/entity"
	"github.com/younwookim/luckie/internal/infrastructure/config"
)

var (
	defaultBackground = color.RGBA{0x1b, 0x22, 0x33, 0xff}
	wallColor         = color.RGBA{0x5a, 0x5a, 0x6e, 0xff}
	oneWayColor       = color.RGBA{0x8a, 0x6d, 0x3b, 0xff}
)

// Background returns the stage clear colour
func (w *World) Background() color.RGBA {
	if w.stageCfg != nil {
		if c, ok := config.ParseColor(w.stageCfg.Background.Color); ok {
			return c
		}
	}
	return defaultBackground
}

// Render draws the layers, the tiles and every entity, back to front.
func (w *World) Render(s entity.Surface) {
	if s == nil || w.stage == nil {
		return
	}
	cam := w.camera

	for _, l := range w.Layers {
		l.Render(s, cam)
	}
	w.drawRects(s, w.static.Solids(cam.View()), wallColor)
	// one-way platforms are drawn as a thin ledge
	for _, r := range w.static.OneWays(cam.View()) {
		x, y := cam.ToScreen(r.X, r.Y)
		s.FillRect(x, y, r.W, 4, oneWayColor)
	}

	for _, h := range w.Hazards {
		h.Render(s, cam)
	}
	if w.Flag != nil {
		w.Flag.Render(s, cam)
	}
	for _, n := range w.NPCs {
		n.Render(s, cam)
	}
	for _, it := range w.Items {
		it.Render(s, cam)
	}
	for _, e := range w.Enemies {
		e.Render(s, cam)
	}
	for _, pr := range w.Projectiles {
		pr.Render(s, cam)
	}
	if w.Player != nil {
		w.Player.Render(s, cam)
	}
}

func (w *World) drawRects(s entity.Surface, rects []collision.Rect, c color.RGBA) {
	for _, r := range rects {
		x, y := w.camera.ToScreen(r.X, r.Y)
		s.FillRect(x, y, r.W, r.H, c)
	}
}
