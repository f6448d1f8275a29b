package gameplay

import (
	"fmt"
	"strings"

	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/obj"
)

const (
	textSmall = 16
	textLarge = 32

	heartSize = 16
	slotSize  = 48
	hudPad    = 8
)

// Draw renders the current frame through r.
func (g *Game) Draw(r Renderer) {
	r.Fill(g.bundle.Game.Background, 1)
	if g.state == StateTitle {
		g.drawTitle(r)
		return
	}

	lvl := g.Levels.Current()
	objs, npcs := lvl.Visible(g.Viewport)
	for _, o := range objs {
		r.Blit(o.Texture, o.Rect)
	}
	for _, n := range npcs {
		r.Blit(n.Texture, n.Rect)
		if n.Alerted && n.AlertTexture != "" {
			r.Blit(n.AlertTexture, common.NewRect(n.Rect.CenterX()-4, n.Rect.Y-hudPad-heartSize, 8, heartSize))
		}
	}
	for _, b := range lvl.Bullets {
		r.Blit(b.Texture, b.Rect)
	}
	p := g.Player
	r.Blit(p.Texture, p.Rect)

	if o := lvl.HoveredInteractive(p.Rect); o != nil && o.Popup != "" {
		w, h := r.MeasureText(o.Popup, textSmall)
		r.Text(o.Popup, textSmall, p.Rect.CenterX()-w/2, p.Rect.Y-h-hudPad)
	}

	g.drawHUD(r)
	if g.message != "" {
		g.drawMessage(r)
	}
	if g.flash > 0 && g.bundle.Game.FlashFrames > 0 {
		r.Fill(g.flashColor, 0.5*float64(g.flash)/float64(g.bundle.Game.FlashFrames))
	}
	if g.Transition.Active {
		r.Fill(colorShade, g.Transition.Alpha())
	}
	if g.state == StatePaused {
		g.drawPaused(r)
	}
}

func (g *Game) drawTitle(r Renderer) {
	g.centered(r, g.bundle.Game.Title, textLarge, g.Viewport.H/4)
}

func (g *Game) drawHUD(r Renderer) {
	p := g.Player
	for i := 0; i < p.MaxHealth; i++ {
		tex := "heart_full"
		if i >= p.Health {
			tex = "heart_empty"
		}
		r.Blit(tex, common.NewRect(hudPad+i*(heartSize+4), hudPad, heartSize, heartSize))
	}

	top := g.Viewport.H - slotSize - hudPad
	for i, item := range p.Inventory {
		slot := common.NewRect(hudPad+i*(slotSize+hudPad), top, slotSize, slotSize)
		if i == p.Selected {
			r.Blit("slot_select", common.NewRect(slot.X-2, slot.Y-2, slot.W+4, slot.H+4))
		}
		r.Blit("slot", slot)
		if item == nil {
			continue
		}
		r.Blit(item.Texture(), common.NewRect(slot.X+8, slot.Y+8, slot.W-16, slot.H-16))
		if gun, ok := item.(*obj.Gun); ok {
			r.Text(fmt.Sprintf("%d/%d", gun.Ammo, gun.Chamber), textSmall, slot.X+2, slot.Bottom()-textSmall)
		}
	}
	if item := p.SelectedItem(); item != nil {
		x := hudPad + p.Selected*(slotSize+hudPad)
		r.Text(item.Name(), textSmall, x, top-textSmall-hudPad)
	}
	if gun, empty := p.NeedsReload(); empty {
		w, h := r.MeasureText(gun.ReloadText, textSmall)
		r.Text(gun.ReloadText, textSmall, p.Rect.CenterX()-w/2, p.Rect.Bottom()+h)
	}

	status := fmt.Sprintf("%s  %s", g.Levels.Current().Title, FormatElapsed(g.ticks, g.bundle.Game.TPS))
	w, _ := r.MeasureText(status, textSmall)
	r.Text(status, textSmall, g.Viewport.W-w-hudPad, hudPad)

	score := fmt.Sprintf("Score: %d", p.Score)
	w, _ = r.MeasureText(score, textSmall)
	r.Text(score, textSmall, g.Viewport.W-w-hudPad, hudPad+textSmall+4)
}

func (g *Game) drawMessage(r Renderer) {
	lines := strings.Split(g.message, "\n")
	panel := common.NewRect(g.Viewport.W/4, g.Viewport.H/8, g.Viewport.W/2, (len(lines)+2)*(textSmall+4))
	r.Blit("sign_panel", panel)
	for i, line := range lines {
		w, _ := r.MeasureText(line, textSmall)
		r.Text(line, textSmall, panel.CenterX()-w/2, panel.Y+(i+1)*(textSmall+4))
	}
}

func (g *Game) drawPaused(r Renderer) {
	r.Fill(colorShade, 0.5)
	if g.Player.Dead() {
		g.centered(r, "You died", textLarge, g.Viewport.H/3)
		g.centered(r, "Press 'R' to restart", textSmall, g.Viewport.H/2)
		return
	}
	g.centered(r, "Paused", textLarge, g.Viewport.H/3)
	g.centered(r, "Press 'P' to resume", textSmall, g.Viewport.H/2)
}

func (g *Game) centered(r Renderer, s string, size, y int) {
	w, _ := r.MeasureText(s, size)
	r.Text(s, size, (g.Viewport.W-w)/2, y)
}

// FormatElapsed renders a tick count as h:mm:ss.
func FormatElapsed(ticks, tps int) string {
	if tps <= 0 {
		tps = 60
	}
	secs := ticks / tps
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
