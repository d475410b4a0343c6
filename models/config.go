package models

import "time"

type Config struct {
	Debug bool `yaml:"debug" envconfig:"TARGREP_DEBUG"`

	Repository struct {
		Url                string        `yaml:"url" envconfig:"TARGREP_URL" default:"http://localhost:3000"`
		Username           string        `yaml:"username" envconfig:"TARGREP_USERNAME"`
		Password           string        `yaml:"password" envconfig:"TARGREP_PASSWORD"`
		Timeout            time.Duration `yaml:"timeout" envconfig:"TARGREP_TIMEOUT" default:"30s"`
		InsecureSkipVerify bool          `yaml:"insecureSkipVerify" envconfig:"TARGREP_INSECURE_SKIP_VERIFY"`
	} `yaml:"repository"`

	Sync struct {
		ContinueOnError bool          `yaml:"continueOnError" envconfig:"TARGREP_CONTINUE_ON_ERROR"`
		Every           time.Duration `yaml:"every" envconfig:"TARGREP_SYNC_EVERY"`
	} `yaml:"sync"`
}
