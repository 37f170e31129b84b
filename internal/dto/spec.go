package dto

import "github.com/aretw0/chainspec/pkg/config"

// Document is the on-disk form of a spec file.
type Document struct {
	Name    string           `yaml:"name"`
	Subject Subject          `yaml:"subject"`
	Config  config.Overrides `yaml:"config"`
	// Chains holds one list of entries per chain. Entries are either a bare
	// member name or a map decoded into Entry.
	Chains [][]any `yaml:"chains"`
}

// Subject selects where the subject value comes from. At most one source is set.
type Subject struct {
	Redis *RedisSubject `yaml:"redis"`
	File  string        `yaml:"file"`
	Value any           `yaml:"value"`
}

// RedisSubject configures a Redis key source.
type RedisSubject struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
	Prefix   string `yaml:"prefix"`
}

// Entry is one link of a chain.
// It uses "mapstructure" tags because entries arrive as generic YAML maps.
type Entry struct {
	Get              string `json:"get,omitempty" mapstructure:"get"`
	Call             string `json:"call,omitempty" mapstructure:"call"`
	Args             []any  `json:"args,omitempty" mapstructure:"args"`
	Should           bool   `json:"should,omitempty" mapstructure:"should"`
	ShouldEventually bool   `json:"shouldEventually,omitempty" mapstructure:"shouldEventually"`
}
