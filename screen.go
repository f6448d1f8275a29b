package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/athora/assets"
	"github.com/milk9111/athora/common"
)

// Screen draws onto the ebiten frame for the current Draw call.
type Screen struct {
	dst      *ebiten.Image
	textures *assets.Textures
}

func (s *Screen) Blit(name string, r common.Rect) {
	img := s.textures.Get(name)
	if s.dst == nil || img == nil || r.W <= 0 || r.H <= 0 {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.W)/float64(b.Dx()), float64(r.H)/float64(b.Dy()))
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	s.dst.DrawImage(img, op)
}

func (s *Screen) Fill(name string, alpha float64) {
	if s.dst == nil || alpha <= 0 {
		return
	}
	b := s.dst.Bounds()
	img := s.textures.Get(name)
	bi := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(bi.Dx()), float64(b.Dy())/float64(bi.Dy()))
	op.ColorScale.ScaleAlpha(float32(alpha))
	s.dst.DrawImage(img, op)
}

func (s *Screen) Text(str string, size, x, y int) {
	if s.dst == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LineSpacing = assets.FaceHeight
	scale := textScale(size)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	text.Draw(s.dst, str, assets.Face, op)
}

func (s *Screen) MeasureText(str string, size int) (int, int) {
	w, h := text.Measure(str, assets.Face, assets.FaceHeight)
	scale := textScale(size)
	return int(w * scale), int(h * scale)
}

func textScale(size int) float64 {
	if size <= 0 {
		return 1
	}
	return float64(size) / assets.FaceHeight
}
