package view

// Config holds view settings. Embed this in your app config for env
// parsing with caarlos0/env.
type Config struct {
	BasePath string `env:"VIEW_BASE_PATH" envDefault:"."`
	Path     string `env:"VIEW_PATH" envDefault:"views/mail"`
	Layout   string `env:"VIEW_LAYOUT"`
	Locale   string `env:"VIEW_LOCALE" envDefault:"en_us"`

	// CacheSize bounds the number of parsed templates kept per View.
	CacheSize int `env:"VIEW_CACHE_SIZE" envDefault:"256"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		BasePath:  ".",
		Path:      "views/mail",
		Locale:    "en_us",
		CacheSize: DefaultCacheSize,
	}
}
