package config

// Config is the root configuration for the GUI client.
type Config struct {
	Server ServerConfig `toml:"server"`
	Input  InputConfig  `toml:"input"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig locates the pyhtmx GUI server.
type ServerConfig struct {
	// URL is the server base address, e.g. "http://localhost:8000".
	URL string `toml:"url"`
	// PingPeriod is how often the client reports the session alive.
	PingPeriod Duration `toml:"ping_period"`
}

// InputConfig tunes input coalescing.
type InputConfig struct {
	// KeyDebounce drops repeated navigation keys arriving faster than
	// this window.
	KeyDebounce Duration `toml:"key_debounce"`
	// PointerDebounce coalesces bursts of wheel events.
	PointerDebounce Duration `toml:"pointer_debounce"`
}

// UIConfig tunes presentation behavior.
type UIConfig struct {
	// Theme names a builtin theme or one loaded from ThemeDir.
	Theme string `toml:"theme"`
	// ThemeDir holds extra theme TOML files, loaded at startup.
	ThemeDir string `toml:"theme_dir"`
	// SurfacesFile optionally overrides the builtin swap-target table.
	SurfacesFile string `toml:"surfaces_file"`
	// InactivityTimeout hides carousel chrome after this quiet period.
	InactivityTimeout Duration `toml:"inactivity_timeout"`
	// SettleDelay bounds a programmatic carousel slide when animation
	// completion is never observed.
	SettleDelay Duration `toml:"settle_delay"`
	// ScrollSettle is the quiet window that ends a manual scroll.
	ScrollSettle Duration `toml:"scroll_settle"`
	// FrameRate drives the carousel spring animation.
	FrameRate int `toml:"frame_rate"`
	// MediaProtocol selects the terminal image protocol: "auto",
	// "kitty", "iterm2", "sixel", or "blocks".
	MediaProtocol string `toml:"media_protocol"`
	// Wallpaper is an optional image shown behind the home screen.
	Wallpaper string `toml:"wallpaper"`
}

// LogConfig controls file logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
