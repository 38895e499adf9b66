package friendboard

// Widget type ids in the default catalog.
const (
	TypeMusicPlayer    WidgetTypeID = "music_player"
	TypePixelArt       WidgetTypeID = "pixel_art"
	TypeConsumptionLog WidgetTypeID = "consumption_log"
	TypeConnectFour    WidgetTypeID = "connect_four"
	TypeGuestbook      WidgetTypeID = "guestbook"
	TypePhotoWall      WidgetTypeID = "photo_wall"
	TypeStickyNote     WidgetTypeID = "sticky_note"
	TypeCountdown      WidgetTypeID = "countdown"
)

var defaultTypeDescriptors = []WidgetTypeDescriptor{
	{
		ID:          TypeMusicPlayer,
		Name:        "Music Player",
		Description: "Playlist player pinned to the friend's page.",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"tracks"},
			"properties": map[string]any{
				"tracks": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"title", "url"},
						"properties": map[string]any{
							"title": map[string]any{"type": "string", "minLength": 1},
							"url":   map[string]any{"type": "string", "minLength": 1},
						},
					},
				},
				"autoplay": map[string]any{"type": "boolean", "default": false},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:             TypePixelArt,
		Name:           "Pixel Art",
		Description:    "Editable pixel canvas.",
		AllowsMultiple: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"width":   map[string]any{"type": "integer", "minimum": 8, "maximum": 64, "default": 16},
				"height":  map[string]any{"type": "integer", "minimum": 8, "maximum": 64, "default": 16},
				"palette": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:          TypeConsumptionLog,
		Name:        "Consumption Log",
		Description: "Books, shows, and albums logged for the friend.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"categories": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "enum": []string{"book", "film", "show", "album", "game"}},
				},
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:          TypeConnectFour,
		Name:        "Connect Four",
		Description: "Ongoing connect four board against the admin.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"first_move": map[string]any{"type": "string", "enum": []string{"admin", "friend"}, "default": "friend"},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:          TypeGuestbook,
		Name:        "Guestbook",
		Description: "Messages left by the friend.",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:             TypePhotoWall,
		Name:           "Photo Wall",
		Description:    "Grid of shared photos.",
		AllowsMultiple: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":  map[string]any{"type": "string"},
				"photos": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:             TypeStickyNote,
		Name:           "Sticky Note",
		Description:    "Short note pinned anywhere on the page.",
		AllowsMultiple: true,
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"text"},
			"properties": map[string]any{
				"text":  map[string]any{"type": "string", "minLength": 1, "maxLength": 280},
				"color": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
	{
		ID:          TypeCountdown,
		Name:        "Countdown",
		Description: "Counts down to a shared date.",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"target"},
			"properties": map[string]any{
				"target": map[string]any{"type": "string", "format": "date-time"},
				"label":  map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
}

// DefaultTypeDescriptors returns the built-in widget catalog.
func DefaultTypeDescriptors() []WidgetTypeDescriptor {
	out := make([]WidgetTypeDescriptor, len(defaultTypeDescriptors))
	copy(out, defaultTypeDescriptors)
	return out
}
