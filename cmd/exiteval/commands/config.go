package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Matrix    string   `mapstructure:"matrix"`
	Task      string   `mapstructure:"task"`
	Policies  []string `mapstructure:"policies"`
	Workers   int      `mapstructure:"workers"`
	Output    string   `mapstructure:"output"`
	Format    string   `mapstructure:"format"`
	LogDir    string   `mapstructure:"log_dir"`
	LogFormat string   `mapstructure:"log_format"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".exiteval")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
