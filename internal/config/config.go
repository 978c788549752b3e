package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env-default:"8080"`
	SocketPort string  `yaml:"socket-port" env-default:"8081"`
	Redis      Redis   `yaml:"redis"`
	Storage    Storage `yaml:"storage"`
	Game       Game    `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Storage struct {
	SQLitePath string `yaml:"sqlite-path" env-default:"tictactoe.db"`
}

type Game struct {
	BoardSize   int    `yaml:"board-size" env-default:"3"`
	MarkA       string `yaml:"mark-a" env-default:"X"`
	MarkB       string `yaml:"mark-b" env-default:"O"`
	SearchDepth int    `yaml:"search-depth" env-default:"9"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
