package gameplay

import "github.com/milk9111/athora/common"

// Renderer draws named textures and text onto the screen.
type Renderer interface {
	Blit(texture string, r common.Rect)
	// Fill covers the screen with a named color at the given opacity.
	Fill(color string, alpha float64)
	Text(s string, size, x, y int)
	MeasureText(s string, size int) (w, h int)
}

// Audio plays named sounds without waiting for them to finish.
type Audio interface {
	Play(sound string)
	// PlayOn plays sound unless the channel is already playing.
	PlayOn(channel, sound string)
}

type nopAudio struct{}

func (nopAudio) Play(string)           {}
func (nopAudio) PlayOn(string, string) {}

const (
	channelDamage = "damage"
	channelDeath  = "death"

	soundHurt  = "hurt"
	soundHeal  = "heal"
	soundDeath = "death"

	colorDamage = "damage_flash"
	colorHeal   = "heal_flash"
	colorShade  = "black"
)
