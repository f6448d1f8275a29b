package main

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/athora/assets"
	"github.com/milk9111/athora/prefabs"
)

// Speaker plays synthesized clips. Each channel holds at most one playing
// clip at a time.
type Speaker struct {
	clips    map[string][]byte
	channels map[string]*audio.Player
	log      *slog.Logger
}

func NewSpeaker(spec prefabs.SoundsSpec, logger *slog.Logger) *Speaker {
	return &Speaker{
		clips:    assets.Sounds(spec),
		channels: map[string]*audio.Player{},
		log:      logger,
	}
}

// Reload replaces every clip, keeping channels that are still playing.
func (s *Speaker) Reload(spec prefabs.SoundsSpec) {
	s.clips = assets.Sounds(spec)
}

func (s *Speaker) Play(name string) {
	if p := s.player(name); p != nil {
		p.Play()
	}
}

func (s *Speaker) PlayOn(channel, name string) {
	if cur := s.channels[channel]; cur != nil && cur.IsPlaying() {
		return
	}
	p := s.player(name)
	if p == nil {
		return
	}
	s.channels[channel] = p
	p.Play()
}

func (s *Speaker) player(name string) *audio.Player {
	if name == "" {
		return nil
	}
	pcm, ok := s.clips[name]
	if !ok {
		s.log.Debug("unknown sound", "sound", name)
		return nil
	}
	return assets.NewPlayer(pcm)
}
