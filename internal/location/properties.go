package location

import (
	"fmt"
)

// PropertiesSize is the size of a location properties record.
const PropertiesSize = 0x21

// BgDimension is the size in pixels of a background layer axis.
type BgDimension uint16

// Background dimensions.
const (
	Bg256  BgDimension = 256
	Bg512  BgDimension = 512
	Bg1024 BgDimension = 1024
	Bg2048 BgDimension = 2048
)

func bgDimension(n byte) BgDimension {
	return Bg256 << (n & 0x3)
}

// Properties describes the graphics, battle and music settings of a
// location.
type Properties struct {
	NameIndex           uint8 `yaml:"name_index" toml:"name_index" cbor:"name_index"`
	EnableXZone         bool  `yaml:"enable_x_zone" toml:"enable_x_zone" cbor:"enable_x_zone"`
	EnableWarp          bool  `yaml:"enable_warp" toml:"enable_warp" cbor:"enable_warp"`
	WavyBg3             bool  `yaml:"wavy_bg3" toml:"wavy_bg3" cbor:"wavy_bg3"`
	WavyBg2             bool  `yaml:"wavy_bg2" toml:"wavy_bg2" cbor:"wavy_bg2"`
	WavyBg1             bool  `yaml:"wavy_bg1" toml:"wavy_bg1" cbor:"wavy_bg1"`
	EnableSpotlights    bool  `yaml:"enable_spotlights" toml:"enable_spotlights" cbor:"enable_spotlights"`
	UnknownFlag16       bool  `yaml:"unknown_flag_1_6" toml:"unknown_flag_1_6" cbor:"unknown_flag_1_6"`
	LoadTimerGraphics   bool  `yaml:"load_timer_graphics" toml:"load_timer_graphics" cbor:"load_timer_graphics"`
	BattleBackground    uint8 `yaml:"battle_background" toml:"battle_background" cbor:"battle_background"`
	Bg3InForeground     bool  `yaml:"bg3_in_foreground" toml:"bg3_in_foreground" cbor:"bg3_in_foreground"`
	Unknown3            uint8 `yaml:"unknown3" toml:"unknown3" cbor:"unknown3"`
	TilePropertiesIndex uint8 `yaml:"tile_properties_index" toml:"tile_properties_index" cbor:"tile_properties_index"`
	BattleProperties    uint8 `yaml:"battle_properties" toml:"battle_properties" cbor:"battle_properties"`
	EnableRandomBattles bool  `yaml:"enable_random_battles" toml:"enable_random_battles" cbor:"enable_random_battles"`
	WindowMaskSettings  uint8 `yaml:"window_mask_settings" toml:"window_mask_settings" cbor:"window_mask_settings"`
	Unknown6Bits        uint8 `yaml:"unknown_6_bits" toml:"unknown_6_bits" cbor:"unknown_6_bits"`
	ColosseumHouse      bool  `yaml:"colosseum_house" toml:"colosseum_house" cbor:"colosseum_house"`

	Bg1Bg2Graphics     [4]uint8  `yaml:"bg1_bg2_graphics" toml:"bg1_bg2_graphics" cbor:"bg1_bg2_graphics"`
	Bg3GraphicsIndex   uint8     `yaml:"bg3_graphics_index" toml:"bg3_graphics_index" cbor:"bg3_graphics_index"`
	Bg1TilesetIndex    uint8     `yaml:"bg1_tileset_index" toml:"bg1_tileset_index" cbor:"bg1_tileset_index"`
	Bg2TilesetIndex    uint8     `yaml:"bg2_tileset_index" toml:"bg2_tileset_index" cbor:"bg2_tileset_index"`
	BgTilemapIndex     [3]uint16 `yaml:"bg_tilemap_index" toml:"bg_tilemap_index" cbor:"bg_tilemap_index"`
	SpriteOverlayIndex uint8     `yaml:"sprite_overlay_index" toml:"sprite_overlay_index" cbor:"sprite_overlay_index"`

	Bg2ShiftLeft     uint8 `yaml:"bg2_shift_left" toml:"bg2_shift_left" cbor:"bg2_shift_left"`
	Bg2ShiftUp       uint8 `yaml:"bg2_shift_up" toml:"bg2_shift_up" cbor:"bg2_shift_up"`
	Bg3ShiftLeft     uint8 `yaml:"bg3_shift_left" toml:"bg3_shift_left" cbor:"bg3_shift_left"`
	Bg3ShiftUp       uint8 `yaml:"bg3_shift_up" toml:"bg3_shift_up" cbor:"bg3_shift_up"`
	Bg2Bg3ScrollMode uint8 `yaml:"bg2_bg3_scroll_mode" toml:"bg2_bg3_scroll_mode" cbor:"bg2_bg3_scroll_mode"`

	Bg1Height BgDimension `yaml:"bg1_h" toml:"bg1_h" cbor:"bg1_h"`
	Bg1Width  BgDimension `yaml:"bg1_w" toml:"bg1_w" cbor:"bg1_w"`
	Bg2Height BgDimension `yaml:"bg2_h" toml:"bg2_h" cbor:"bg2_h"`
	Bg2Width  BgDimension `yaml:"bg2_w" toml:"bg2_w" cbor:"bg2_w"`
	Bg3Height BgDimension `yaml:"bg3_h" toml:"bg3_h" cbor:"bg3_h"`
	Bg3Width  BgDimension `yaml:"bg3_w" toml:"bg3_w" cbor:"bg3_w"`

	Unused18Bits          uint8 `yaml:"unused_18_bits" toml:"unused_18_bits" cbor:"unused_18_bits"`
	PaletteIndex          uint8 `yaml:"palette_index" toml:"palette_index" cbor:"palette_index"`
	PaletteAnimationIndex uint8 `yaml:"palette_animation_index" toml:"palette_animation_index" cbor:"palette_animation_index"`
	Bg1Bg2AnimationIndex  uint8 `yaml:"bg1_bg2_animation_index" toml:"bg1_bg2_animation_index" cbor:"bg1_bg2_animation_index"`
	Bg3AnimationIndex     uint8 `yaml:"bg3_animation_index" toml:"bg3_animation_index" cbor:"bg3_animation_index"`
	MusicTrack            uint8 `yaml:"music_track" toml:"music_track" cbor:"music_track"`
	Unknown1d             uint8 `yaml:"unknown_1d" toml:"unknown_1d" cbor:"unknown_1d"`
	MapWidth              uint8 `yaml:"map_width" toml:"map_width" cbor:"map_width"`
	MapHeight             uint8 `yaml:"map_height" toml:"map_height" cbor:"map_height"`
	Bg2Bg3ColorMathMode   uint8 `yaml:"bg2_bg3_color_math_mode" toml:"bg2_bg3_color_math_mode" cbor:"bg2_bg3_color_math_mode"`
}

// ParseProperties decodes a location properties record.
func ParseProperties(data []byte) (Properties, error) {
	if len(data) < PropertiesSize {
		return Properties{}, fmt.Errorf("properties need 0x%02x bytes, have 0x%02x", PropertiesSize, len(data))
	}

	d := data
	return Properties{
		NameIndex:           d[0x00],
		EnableXZone:         testBit(d[0x01], 0),
		EnableWarp:          testBit(d[0x01], 1),
		WavyBg3:             testBit(d[0x01], 2),
		WavyBg2:             testBit(d[0x01], 3),
		WavyBg1:             testBit(d[0x01], 4),
		EnableSpotlights:    testBit(d[0x01], 5),
		UnknownFlag16:       testBit(d[0x01], 6),
		LoadTimerGraphics:   testBit(d[0x01], 7),
		BattleBackground:    d[0x02] & 0x7f,
		Bg3InForeground:     testBit(d[0x02], 7),
		Unknown3:            d[0x03],
		TilePropertiesIndex: d[0x04],
		BattleProperties:    d[0x05] & 0x7f,
		EnableRandomBattles: testBit(d[0x05], 7),
		WindowMaskSettings:  d[0x06] & 0x3,
		Unknown6Bits:        (d[0x06] >> 2) & 0x1f,
		ColosseumHouse:      testBit(d[0x06], 7),

		// graphics indexes are packed 7 bit values
		Bg1Bg2Graphics: [4]uint8{
			d[0x07] & 0x7f,
			(d[0x07]>>7 | d[0x08]<<1) & 0x7f,
			(d[0x08]>>6 | d[0x09]<<2) & 0x7f,
			(d[0x09]>>5 | d[0x0a]<<3) & 0x7f,
		},
		Bg3GraphicsIndex: (d[0x0a]>>4 | d[0x0b]<<4) & 0x3f,
		Bg1TilesetIndex:  (d[0x0b]>>2 | d[0x0c]<<6) & 0x7f,
		Bg2TilesetIndex:  d[0x0c] >> 1,
		BgTilemapIndex: [3]uint16{
			(uint16(d[0x0d]) | uint16(d[0x0e])<<8) & 0xfff,
			(uint16(d[0x0e])>>2 | uint16(d[0x0f])<<6) & 0xfff,
			(uint16(d[0x0f])>>4 | uint16(d[0x10])<<4) & 0xfff,
		},
		SpriteOverlayIndex: d[0x11],

		Bg2ShiftLeft:     d[0x12],
		Bg2ShiftUp:       d[0x13],
		Bg3ShiftLeft:     d[0x14],
		Bg3ShiftUp:       d[0x15],
		Bg2Bg3ScrollMode: d[0x16],

		Bg1Height: bgDimension(d[0x17]),
		Bg1Width:  bgDimension(d[0x17] >> 2),
		Bg2Height: bgDimension(d[0x17] >> 4),
		Bg2Width:  bgDimension(d[0x17] >> 6),
		Bg3Height: bgDimension(d[0x18] >> 4),
		Bg3Width:  bgDimension(d[0x18] >> 6),

		Unused18Bits:          d[0x18] & 0xf,
		PaletteIndex:          d[0x19],
		PaletteAnimationIndex: d[0x1a],
		Bg1Bg2AnimationIndex:  d[0x1b] & 0x1f,
		Bg3AnimationIndex:     d[0x1b] >> 5,
		MusicTrack:            d[0x1c],
		Unknown1d:             d[0x1d],
		MapWidth:              d[0x1e],
		MapHeight:             d[0x1f],
		Bg2Bg3ColorMathMode:   d[0x20],
	}, nil
}

func testBit(b byte, bit uint) bool {
	return b&(1<<bit) != 0
}
