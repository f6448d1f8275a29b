package gameplay

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/milk9111/athora/common"
	"github.com/milk9111/athora/levels"
	"github.com/milk9111/athora/obj"
	"github.com/milk9111/athora/prefabs"
	"github.com/milk9111/athora/scores"
)

// ErrQuit is returned by Tick once a quit request has been handled.
var ErrQuit = errors.New("quit requested")

type State int

const (
	StateTitle State = iota
	StatePlaying
	StatePaused
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateTransitioning:
		return "transitioning"
	default:
		return "title"
	}
}

type Option func(*Game)

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

func WithAudio(a Audio) Option {
	return func(g *Game) { g.audio = a }
}

func WithSession(id string) Option {
	return func(g *Game) { g.session = id }
}

// WithRunEnd registers a callback invoked with the result of every run that
// ends by quitting or restarting.
func WithRunEnd(fn func(scores.Result)) Option {
	return func(g *Game) { g.onRunEnd = fn }
}

// Game drains the event queue and advances the world once per tick.
type Game struct {
	Levels     *obj.Levels
	Player     *obj.Player
	Queue      *obj.EventQueue
	Transition *obj.Transition
	Viewport   common.Rect

	bundle  *prefabs.Bundle
	sources []levels.Source
	catalog *obj.Catalog
	legend  *obj.Legend

	state       State
	ticks       int
	flash       int
	flashColor  string
	deathPlayed bool
	message     string
	cleared     int
	kills       int
	quit        bool

	session  string
	log      *slog.Logger
	audio    Audio
	onRunEnd func(scores.Result)
}

// New parses every level source and returns a game at the title screen.
func New(b *prefabs.Bundle, srcs []levels.Source, opts ...Option) (*Game, error) {
	g := &Game{
		Queue:    &obj.EventQueue{},
		Viewport: common.NewRect(0, 0, b.Game.ScreenWidth, b.Game.ScreenHeight),
		bundle:   b,
		sources:  slices.Clone(srcs),
		log:      slog.Default(),
		audio:    nopAudio{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.session == "" {
		g.session = uuid.NewString()
	}
	g.log = g.log.With("session", g.session)

	g.catalog = obj.NewCatalog(b.Items, b.Bullet)
	legend, err := obj.NewLegend(b, g.catalog)
	if err != nil {
		return nil, fmt.Errorf("gameplay: %w", err)
	}
	g.legend = legend
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	list, err := obj.ParseAll(g.sources, g.legend)
	if err != nil {
		return fmt.Errorf("gameplay: %w", err)
	}
	g.Queue.Drain()
	p, err := obj.NewPlayer(g.bundle.Player, g.bundle.Game.ScrollMargin, g.catalog, g.Queue)
	if err != nil {
		return fmt.Errorf("gameplay: %w", err)
	}
	ls, err := obj.NewLevels(list, p)
	if err != nil {
		return fmt.Errorf("gameplay: %w", err)
	}
	g.Levels = ls
	g.Player = p
	g.Transition = obj.NewTransition(g.bundle.Game.TransitionFrames)
	g.Transition.OnPeak = g.advance

	g.state = StateTitle
	g.ticks = 0
	g.flash = 0
	g.deathPlayed = false
	g.message = ""
	g.cleared = 0
	g.kills = 0
	g.log.Info("levels loaded", "count", ls.Len())
	return nil
}

func (g *Game) State() State    { return g.state }
func (g *Game) Ticks() int      { return g.ticks }
func (g *Game) Message() string { return g.message }
func (g *Game) Session() string { return g.session }

// Post queues an event for the next tick.
func (g *Game) Post(e obj.Event) {
	g.Queue.Post(e)
}

// Result summarizes the current run.
func (g *Game) Result() scores.Result {
	return scores.Result{
		Session: g.session,
		Score:   g.Player.Score,
		Levels:  g.cleared,
		Kills:   g.kills,
		Ticks:   g.ticks,
	}
}

// Tick drains pending events, then simulates one step when playing. It
// returns ErrQuit once the loop should stop.
func (g *Game) Tick(in obj.Input) error {
	if in == nil {
		in = obj.KeySet{}
	}
	for _, e := range g.Queue.Drain() {
		g.handle(e)
		if g.quit {
			break
		}
	}
	if g.quit {
		g.endRun()
		return ErrQuit
	}

	if g.state != StateTitle && g.Player.Dead() {
		g.state = StatePaused
		if !g.deathPlayed {
			g.deathPlayed = true
			g.audio.PlayOn(channelDeath, soundDeath)
			g.log.Info("player died", "level", g.Levels.Current().Title, "score", g.Player.Score)
		}
	}

	switch g.state {
	case StatePlaying:
		g.simulate(in)
	case StateTransitioning:
		if !g.Transition.Update() {
			g.state = StatePlaying
		}
	}

	if g.flash > 0 {
		g.flash--
	}
	return nil
}

func (g *Game) simulate(in obj.Input) {
	g.ticks++
	lvl := g.Levels.Current()
	g.Player.HandleMovement(in, lvl, g.Viewport)
	lvl.Update(g.Player, g.Queue)
	g.resolveBullets(lvl)
	if lava := lvl.LavaAt(g.Player.Rect); lava != nil {
		g.Queue.Post(lava.Interact())
	}
}

// resolveBullets moves every live bullet and applies the first matching
// outcome: off screen, player shot hitting an NPC, NPC shot hitting the
// player, or a wall.
func (g *Game) resolveBullets(lvl *obj.Level) {
	p := g.Player
	for _, b := range slices.Clone(lvl.Bullets) {
		b.Advance()
		if !b.Rect.Intersects(g.Viewport) {
			lvl.RemoveBullet(b)
			continue
		}
		switch b.Faction() {
		case obj.FactionPlayer:
			if n := lvl.NPCAt(b.Rect); n != nil {
				lvl.RemoveBullet(b)
				n.ChangeHealth(-b.Damage)
				if n.Dead() {
					lvl.RemoveNPC(n)
					g.credit()
				}
				continue
			}
		case obj.FactionEnemy:
			if !p.Dead() && b.Rect.Intersects(p.Rect) {
				lvl.RemoveBullet(b)
				p.ChangeHP(-b.Damage)
				continue
			}
		}
		if lvl.SolidAt(b.Rect) {
			lvl.RemoveBullet(b)
		}
	}
}

func (g *Game) credit() {
	score := g.bundle.Game.ScorePerKill
	g.Player.Score += score
	g.kills++
	g.Queue.Post(obj.NPCKilled{Score: score})
}

func (g *Game) handle(e obj.Event) {
	switch ev := e.(type) {
	case obj.QuitRequested:
		g.quit = true
	case obj.KeyPressed:
		g.handleKey(ev.Key)
	case obj.HealthChanged:
		g.applyHealth(ev.Amount)
	case obj.PotionDrunk:
		g.audio.Play(ev.Sound)
		g.Player.ChangeHP(ev.Heal)
	case obj.ItemPickedUp:
		g.Player.AddToInventory(ev.Object, g.Levels.Current())
	case obj.SignRead:
		g.message = ev.Contents
		g.audio.Play(ev.Sound)
	case obj.DoorEntered:
		g.enterDoor(ev.Door)
	case obj.LavaTouched:
		g.burn(ev)
	case obj.GunEmpty:
		g.log.Debug("gun empty")
	case obj.GunReloaded:
		g.audio.Play(ev.Sound)
	case obj.ShotFired:
		g.audio.Play(ev.Sound)
	case obj.NPCKilled:
		g.log.Info("npc killed", "score", g.Player.Score)
	case obj.LevelSourceChanged:
		g.reloadLevel(ev.Path)
	}
}

func (g *Game) handleKey(k obj.Key) {
	switch g.state {
	case StateTitle:
		switch k {
		case obj.KeyStart:
			g.state = StatePlaying
			g.log.Info("run started", "level", g.Levels.Current().Title)
		case obj.KeyQuit:
			g.quit = true
		}
	case StatePlaying:
		g.playingKey(k)
	case StatePaused:
		if g.Player.Dead() {
			switch k {
			case obj.KeyRestart:
				g.restart()
			case obj.KeyQuit:
				g.quit = true
			}
			return
		}
		switch k {
		case obj.KeyPause:
			g.state = StatePlaying
		case obj.KeyQuit:
			g.quit = true
		}
	}
}

func (g *Game) playingKey(k obj.Key) {
	p, lvl := g.Player, g.Levels.Current()
	switch k {
	case obj.KeyPause, obj.KeyQuit:
		g.state = StatePaused
	case obj.KeyUse:
		p.UseSelected(lvl)
	case obj.KeyDrop:
		p.RemoveFromInventory(lvl)
	case obj.KeyReload:
		p.Reload()
	case obj.KeySlot1:
		p.SelectSlot(0)
	case obj.KeySlot2:
		p.SelectSlot(1)
	case obj.KeyInteract:
		if o := lvl.HoveredInteractive(p.Rect); o != nil {
			g.Queue.Post(o.Interact())
		}
	case obj.KeyConfirm:
		g.message = ""
	}
}

func (g *Game) applyHealth(amount int) {
	p := g.Player
	if amount < 0 && p.Dead() {
		return
	}
	p.ApplyHealth(amount)
	g.flash = g.bundle.Game.FlashFrames
	if amount < 0 {
		g.flashColor = colorDamage
		g.audio.PlayOn(channelDamage, soundHurt)
		return
	}
	g.flashColor = colorHeal
	g.audio.PlayOn(channelDamage, soundHeal)
}

// burn applies lava damage at most once per damage flash.
func (g *Game) burn(ev obj.LavaTouched) {
	if g.flash > 0 || g.Player.Dead() {
		return
	}
	g.flash = g.bundle.Game.FlashFrames
	g.flashColor = colorDamage
	g.audio.Play(ev.Sound)
	g.Player.ChangeHP(-ev.Damage)
}

func (g *Game) enterDoor(door *obj.Object) {
	if g.state != StatePlaying {
		return
	}
	if !g.Levels.HasNext() {
		g.message = door.Contents
		if g.message == "" {
			g.message = g.bundle.Game.NoLevelText
		}
		return
	}
	g.audio.Play(door.Sound)
	g.message = ""
	g.state = StateTransitioning
	g.Transition.Enter()
}

func (g *Game) advance() {
	from := g.Levels.Current().Title
	if g.Levels.Advance() {
		g.cleared++
		g.log.Info("level changed", "from", from, "to", g.Levels.Current().Title)
	}
}

func (g *Game) restart() {
	g.endRun()
	if err := g.reset(); err != nil {
		g.log.Error("restart failed", "error", err)
		g.quit = true
	}
}

func (g *Game) endRun() {
	r := g.Result()
	g.log.Info("run ended", "score", r.Score, "levels", r.Levels, "ticks", r.Ticks)
	if g.onRunEnd != nil {
		g.onRunEnd(r)
	}
}

// reloadLevel re-parses a changed level file. A file that no longer parses
// leaves the loaded level untouched.
func (g *Game) reloadLevel(path string) {
	i := levels.Index(g.sources, path)
	if i < 0 {
		g.log.Debug("ignoring change to unknown level", "path", path)
		return
	}
	text, err := levels.ReadFile(path)
	if err != nil {
		g.log.Warn("level reload failed", "path", path, "error", err)
		return
	}
	lvl, err := obj.Parse(g.sources[i].Title, text, g.legend)
	if err != nil {
		g.log.Warn("level reload failed", "path", path, "error", err)
		return
	}
	g.sources[i].Text = text
	if err := g.Levels.Replace(i, lvl); err != nil {
		g.log.Warn("level reload failed", "path", path, "error", err)
		return
	}
	g.log.Info("level reloaded", "title", lvl.Title)
}
