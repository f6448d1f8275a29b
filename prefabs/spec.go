package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec holds screen, timing and scoring settings.
type GameSpec struct {
	Title            string  `yaml:"title"`
	ScreenWidth      int     `yaml:"screen_width"`
	ScreenHeight     int     `yaml:"screen_height"`
	TPS              int     `yaml:"tps"`
	TileSize         int     `yaml:"tile_size"`
	ScrollMargin     float64 `yaml:"scroll_margin"`
	TransitionFrames int     `yaml:"transition_frames"`
	FlashFrames      int     `yaml:"flash_frames"`
	ScorePerKill     int     `yaml:"score_per_kill"`
	LavaDamage       int     `yaml:"lava_damage"`
	NoLevelText      string  `yaml:"no_level_text"`
	Background       string  `yaml:"background"`
}

type PlayerSpec struct {
	Name       string `yaml:"name"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Health     int    `yaml:"health"`
	MaxHealth  int    `yaml:"max_health"`
	Velocity   int    `yaml:"velocity"`
	Gravity    int    `yaml:"gravity"`
	JumpHeight int    `yaml:"jump_height"`
	JumpStep   int    `yaml:"jump_step"`
	Texture    string `yaml:"texture"`
	// StartItems are item names placed into the inventory slots in order.
	StartItems []string `yaml:"start_items"`
}

type RobotSpec struct {
	Name         string `yaml:"name"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Health       int    `yaml:"health"`
	Gravity      int    `yaml:"gravity"`
	DetectWidth  int    `yaml:"detect_width"`
	DetectHeight int    `yaml:"detect_height"`
	// FireDelayFrames of 0 means one second at the configured tick rate.
	FireDelayFrames int    `yaml:"fire_delay_frames"`
	MaxBullets      int    `yaml:"max_bullets"`
	Texture         string `yaml:"texture"`
	AlertTexture    string `yaml:"alert_texture"`
}

type BulletSpec struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Speed   int    `yaml:"speed"`
	Damage  int    `yaml:"damage"`
	Texture string `yaml:"texture"`
	Sound   string `yaml:"sound"`
}

type PotionSpec struct {
	Name    string `yaml:"name"`
	Texture string `yaml:"texture"`
	Heal    int    `yaml:"heal"`
	Sound   string `yaml:"sound"`
}

type GunSpec struct {
	Name       string `yaml:"name"`
	Texture    string `yaml:"texture"`
	Chamber    int    `yaml:"chamber"`
	ReloadText string `yaml:"reload_text"`
	Sound      string `yaml:"sound"`
}

type ItemsSpec struct {
	Potion         PotionSpec `yaml:"potion"`
	Gun            GunSpec    `yaml:"gun"`
	DroppedSize    int        `yaml:"dropped_size"`
	DroppedGravity int        `yaml:"dropped_gravity"`
	PickupPopup    string     `yaml:"pickup_popup"`
}

// PlacementSpec describes one thing created for a legend character.
type PlacementSpec struct {
	Kind     string `yaml:"kind"`
	Texture  string `yaml:"texture"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Popup    string `yaml:"popup"`
	Contents string `yaml:"contents"`
	Sound    string `yaml:"sound"`
	Item     string `yaml:"item"`
	Heal     int    `yaml:"heal"`
	Health   int    `yaml:"health"`
}

// LegendSpec maps level text characters to placements.
type LegendSpec struct {
	Tiles map[string][]PlacementSpec `yaml:"tiles"`
}

// ControlsSpec maps action names to key names.
type ControlsSpec struct {
	Bindings map[string][]string `yaml:"bindings"`
}

type TexturesSpec struct {
	Fallback *YAMLColor           `yaml:"fallback"`
	Colors   map[string]YAMLColor `yaml:"colors"`
}

type ToneSpec struct {
	Frequency float64 `yaml:"frequency"`
	Millis    int     `yaml:"millis"`
	Volume    float64 `yaml:"volume"`
	Slide     float64 `yaml:"slide"`
}

type SoundsSpec struct {
	Tones map[string]ToneSpec `yaml:"tones"`
}

// Bundle groups every spec the game reads at startup.
type Bundle struct {
	Game     GameSpec
	Player   PlayerSpec
	Robot    RobotSpec
	Bullet   BulletSpec
	Items    ItemsSpec
	Legend   LegendSpec
	Controls ControlsSpec
	Textures TexturesSpec
	Sounds   SoundsSpec
}

// LoadBundle loads all specs, returning the first failure.
func LoadBundle() (*Bundle, error) {
	var b Bundle
	var err error
	if b.Game, err = LoadSpec[GameSpec]("game.yaml"); err != nil {
		return nil, err
	}
	if b.Player, err = LoadSpec[PlayerSpec]("player.yaml"); err != nil {
		return nil, err
	}
	if b.Robot, err = LoadSpec[RobotSpec]("robot.yaml"); err != nil {
		return nil, err
	}
	if b.Bullet, err = LoadSpec[BulletSpec]("bullet.yaml"); err != nil {
		return nil, err
	}
	if b.Items, err = LoadSpec[ItemsSpec]("items.yaml"); err != nil {
		return nil, err
	}
	if b.Legend, err = LoadSpec[LegendSpec]("legend.yaml"); err != nil {
		return nil, err
	}
	if b.Controls, err = LoadSpec[ControlsSpec]("controls.yaml"); err != nil {
		return nil, err
	}
	if b.Textures, err = LoadSpec[TexturesSpec]("textures.yaml"); err != nil {
		return nil, err
	}
	if b.Sounds, err = LoadSpec[SoundsSpec]("sounds.yaml"); err != nil {
		return nil, err
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Bundle) validate() error {
	if b.Game.TileSize <= 0 {
		return fmt.Errorf("prefabs: game.yaml: tile_size must be positive, got %d", b.Game.TileSize)
	}
	if b.Game.TPS <= 0 {
		return fmt.Errorf("prefabs: game.yaml: tps must be positive, got %d", b.Game.TPS)
	}
	if b.Game.ScreenWidth <= 0 || b.Game.ScreenHeight <= 0 {
		return fmt.Errorf("prefabs: game.yaml: invalid screen %dx%d", b.Game.ScreenWidth, b.Game.ScreenHeight)
	}
	if b.Player.JumpStep <= 0 || b.Player.JumpHeight <= 0 {
		return fmt.Errorf("prefabs: player.yaml: jump_height and jump_step must be positive")
	}
	for key := range b.Legend.Tiles {
		if len([]rune(key)) != 1 {
			return fmt.Errorf("prefabs: legend.yaml: key %q must be a single character", key)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
