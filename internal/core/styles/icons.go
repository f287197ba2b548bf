package styles

// Entity kind glyphs shown before chip labels and in the details panel.
var (
	IconCompany = "🏢"
	IconCrypto  = "🪙"
	IconOther   = "🔎"
)

// Player state glyphs for the status line.
var (
	IconPlaying = "▶"
	IconPreview = "◌"
	IconPaused  = "❚❚"
)

// Notification level glyphs.
var (
	IconNotifyInfo    = "ℹ"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✖"
)
