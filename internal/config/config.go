package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Sessions   `yaml:"sessions"`
	Pages      `yaml:"pages"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Storage struct {
	Path        string `yaml:"path" env:"DB_PATH" env-default:"webdemo.db"`
	TemplateDir string `yaml:"template_dir" env:"TEMPLATE_DIR" env-default:"web/templates"`
	StaticDir   string `yaml:"static_dir" env:"STATIC_DIR" env-default:"web/static"`
}

type Sessions struct {
	// TTL is a sliding window measured from the last request.
	TTL        time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"1m"`
	CookieName string        `yaml:"cookie_name" env-default:"session_id"`
}

type Pages struct {
	PerPage      int `yaml:"per_page" env-default:"10"`
	SeedMessages int `yaml:"seed_messages" env-default:"25"`
}

// MustLoad reads the config file at path, falling back to environment
// variables alone when the file does not exist. It panics on malformed
// input, matching startup-or-die semantics.
func MustLoad(path string) *Config {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				panic("failed to read config: " + err.Error())
			}
			return &cfg
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}
	return &cfg
}
