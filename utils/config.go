package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"

	"github.com/sb25/REST-Web-Services-interaction/models"
)

// LoadConfig reads an optional .env file and then the TARGREP_*
// environment variables.
func LoadConfig() (*models.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg models.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile decodes a YAML configuration, as used by the tests.
func LoadConfigFile(path string) (*models.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg models.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func DescribeConfig(cfg *models.Config) string {
	return fmt.Sprintf("Using : \n"+
		"\tDebug : %t \n\n"+
		"\tRepository Url : %s \n"+
		"\tRepository Username : %s\n"+
		"\tRepository Password : %s\n"+
		"\tRequest Timeout : %s\n"+
		"\tSkip TLS Verification : %t\n\n"+
		"\tContinue On Error : %t\n"+
		"\tSync Every : %s\n",
		cfg.Debug,
		cfg.Repository.Url,
		cfg.Repository.Username,
		mask(cfg.Repository.Password),
		cfg.Repository.Timeout,
		cfg.Repository.InsecureSkipVerify,
		cfg.Sync.ContinueOnError,
		cfg.Sync.Every)
}

func mask(secret string) string {
	if secret == "" {
		return "(none)"
	}
	return strings.Repeat("*", 8)
}
