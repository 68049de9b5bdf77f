package config

import (
	"fmt"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	StoragePg     = "pg"
	StorageMemory = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	// content type names resolved by the store, e.g. "Thread" and "Forum"
	ThreadContentType string `yaml:"thread_content_type" validate:"required"`
	ForumContentType  string `yaml:"forum_content_type" validate:"required"`

	ThreadsPerPage int `yaml:"threads_per_page" validate:"required,min=1"`
	MaxPageSize    int `yaml:"max_page_size" validate:"required,gtefield=ThreadsPerPage"`

	Storage      string `yaml:"storage" validate:"required,oneof=pg memory"`
	FixturesPath string `yaml:"fixtures_path"`

	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	HttpPort       int      `yaml:"http_port" validate:"omitempty,min=1,max=65535"`
	HSTS           bool     `yaml:"hsts"`

	// per client IP; zero rps disables limiting
	RateLimitRps   float64 `yaml:"rate_limit_rps" validate:"min=0"`
	RateLimitBurst int     `yaml:"rate_limit_burst" validate:"min=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and, when the pg storage is selected, private.yaml
// from configFolder. It panics on missing files or invalid values.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(public); err != nil {
		panic(fmt.Sprintf("invalid public config: %s", err))
	}

	var private Private
	if public.Storage == StoragePg {
		mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
		if err := validate.Struct(private); err != nil {
			panic(fmt.Sprintf("invalid private config: %s", err))
		}
	}

	return &Config{public, private}
}
