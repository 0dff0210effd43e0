package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Configuration is resolved with the following precedence (highest first):

 1. Environment variables prefixed with OASKEMA_ (for example OASKEMA_LOG_LEVEL)
 2. The config file (--config, or ./oaskema.yaml when present)
 3. Defaults set in setDefaults

The file describes the document header and the routes whose request schemas
go into the generated OpenAPI document:

	info:
	  title: Users API
	  version: 1.0.0
	routes:
	  - method: POST
	    path: /users
	    inputs:
	      - in: json
	        schema:
	          type: object
	          fields:
	            - name: name
	              schema: {type: string, minLength: 1}
*/

const EnvPrefix = "OASKEMA"

// Config is the validated configuration.
type Config struct {
	Log     Log      `mapstructure:"log"`
	Info    Info     `mapstructure:"info" validate:"required"`
	Servers []Server `mapstructure:"servers" validate:"dive"`
	Routes  []Route  `mapstructure:"routes" validate:"dive"`
	Serve   Serve    `mapstructure:"serve"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	File  string `mapstructure:"file"`
}

type Info struct {
	Title       string `mapstructure:"title" validate:"required"`
	Version     string `mapstructure:"version" validate:"required"`
	Description string `mapstructure:"description"`
}

type Server struct {
	URL         string `mapstructure:"url" validate:"required,url"`
	Description string `mapstructure:"description"`
}

type Serve struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	DocsPath string `mapstructure:"docs_path" validate:"required,startswith=/"`
}

// Route is one operation and the request locations it validates.
type Route struct {
	Method      string   `mapstructure:"method" validate:"required,oneof=GET PUT POST DELETE OPTIONS HEAD PATCH"`
	Path        string   `mapstructure:"path" validate:"required,startswith=/"`
	OperationID string   `mapstructure:"operationId"`
	Summary     string   `mapstructure:"summary"`
	Tags        []string `mapstructure:"tags"`
	Inputs      []Input  `mapstructure:"inputs" validate:"dive"`
}

// Input binds a schema to one request location. Location names are not
// checked here so that unsupported ones surface as diagnostics.
type Input struct {
	In     string     `mapstructure:"in" validate:"required"`
	Schema SchemaSpec `mapstructure:"schema"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.file", "")
	v.SetDefault("info.title", "oaskema")
	v.SetDefault("info.version", "0.0.0")
	v.SetDefault("serve.addr", "localhost:8080")
	v.SetDefault("serve.docs_path", "/openapi.json")
}

// Load reads path (or ./oaskema.yaml when path is empty and the file
// exists), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("oaskema")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToUpper(c.Log.Level)
	for i := range c.Routes {
		c.Routes[i].Method = strings.ToUpper(c.Routes[i].Method)
	}
}

// Validate checks struct tags and then every route schema.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config validation")
	}
	for _, r := range c.Routes {
		for j, in := range r.Inputs {
			if err := in.Schema.validate(); err != nil {
				return errors.Wrapf(err, "route %s %s input %d", r.Method, r.Path, j)
			}
		}
	}
	return nil
}
