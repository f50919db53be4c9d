package cli

import (
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Env holds the flag defaults read from the environment. A .env file in the working
// directory is loaded first; real environment variables win over it.
type Env struct {
	Dir      string `env:"HEARTNOTE_CONFIG_DIR"`
	Audio    string `env:"HEARTNOTE_AUDIO"`
	Letter   string `env:"HEARTNOTE_LETTER"`
	LogLevel string `env:"HEARTNOTE_LOG_LEVEL,default=info"`
	Format   string `env:"HEARTNOTE_FORMAT,default=json"`
	Glyphs   string `env:"HEARTNOTE_TUI_GLYPHS"`
}

func loadEnv() (Env, error) {
	_ = godotenv.Load()
	var e Env
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return Env{LogLevel: "info", Format: "json"}, err
	}
	return e, nil
}
