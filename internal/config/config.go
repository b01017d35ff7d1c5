package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config - settings of the renderer and the optional Telegram delivery
type Config struct {
	Render   RenderConfig   `mapstructure:"render"`
	Log      LogConfig      `mapstructure:"log"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type RenderConfig struct {
	Scale     float64  `mapstructure:"scale"`      // canvas scale factor (1 = layout size)
	FontPaths []string `mapstructure:"font_paths"` // font files tried in order before the embedded font
}

type LogConfig struct {
	File    string `mapstructure:"file"` // file log, disabled when empty
	Verbose bool   `mapstructure:"verbose"`
}

// TelegramConfig - delivery of the rendered PNG, enabled when both token and chat id are set
type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	ChatID      string `mapstructure:"chat_id"`
	Caption     string `mapstructure:"caption"`
	APIEndpoint string `mapstructure:"api_endpoint"`
	Timeout     int    `mapstructure:"timeout"` // seconds
	MaxRetries  int    `mapstructure:"max_retries"`
}

// Enabled reports whether the chart should be sent after rendering.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// Flag names bound to config keys.
const (
	FlagConfig          = "config"
	FlagScale           = "scale"
	FlagFont            = "font"
	FlagLogFile         = "log-file"
	FlagVerbose         = "verbose"
	FlagTelegramChatID  = "telegram-chat-id"
	FlagTelegramCaption = "telegram-caption"
)

var flagKeys = map[string]string{
	FlagScale:           "render.scale",
	FlagFont:            "render.font_paths",
	FlagLogFile:         "log.file",
	FlagVerbose:         "log.verbose",
	FlagTelegramChatID:  "telegram.chat_id",
	FlagTelegramCaption: "telegram.caption",
}

// RegisterFlags adds the command-line flags read by LoadConfig.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "YAML settings file (default ./chart-render.yaml if present)")
	flags.Float64(FlagScale, 1, "Canvas scale factor (env: CHART_RENDER_RENDER_SCALE)")
	flags.StringSlice(FlagFont, nil, "Font files to try before the embedded font (env: CHART_RENDER_RENDER_FONT_PATHS)")
	flags.String(FlagLogFile, "", "Write a debug log to this file (env: CHART_RENDER_LOG_FILE)")
	flags.BoolP(FlagVerbose, "v", false, "Verbose console logging (env: CHART_RENDER_LOG_VERBOSE)")
	flags.String(FlagTelegramChatID, "", "Send the chart to this Telegram chat (env: TELEGRAM_CHAT_ID)")
	flags.String(FlagTelegramCaption, "", "Caption of the Telegram photo, chart title by default (env: TELEGRAM_CAPTION)")
}

// LoadConfig from defaults, settings file, .env, environment and flags (later wins)
// 1. defaults
// 2. chart-render.yaml or --config
// 3. .env file
// 4. environment
// 5. flags set on the command line
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Load .env file into the environment, missing file is fine
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup(FlagConfig); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("chart-render")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("CHART_RENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setupEnvAliases(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// font paths come as a comma separated string from env, a list from YAML or flags
	if raw := v.Get("render.font_paths"); raw != nil {
		switch fp := raw.(type) {
		case string:
			config.Render.FontPaths = splitList(fp)
		case []string:
			config.Render.FontPaths = fp
		case []interface{}:
			result := make([]string, 0, len(fp))
			for _, item := range fp {
				if str, ok := item.(string); ok {
					result = append(result, strings.TrimSpace(str))
				}
			}
			config.Render.FontPaths = result
		}
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func setupEnvAliases(v *viper.Viper) {
	// Telegram - the usual unprefixed names also work
	v.BindEnv("telegram.bot_token", "CHART_RENDER_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "CHART_RENDER_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.caption", "CHART_RENDER_TELEGRAM_CAPTION", "TELEGRAM_CAPTION")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	// Render
	v.SetDefault("render.scale", 1.0)
	v.SetDefault("render.font_paths", []string{})

	// Log
	v.SetDefault("log.file", "")
	v.SetDefault("log.verbose", false)

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.caption", "")
	v.SetDefault("telegram.api_endpoint", "https://api.telegram.org/bot%s/%s")
	v.SetDefault("telegram.timeout", 30)
	v.SetDefault("telegram.max_retries", 3)
}

// bindFlags binds only flags set on the command line, so flag defaults never hide env or file values
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive, got %g", cfg.Render.Scale)
	}
	if cfg.Telegram.ChatID != "" && cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.chat_id is set but telegram.bot_token is missing (env: TELEGRAM_BOT_TOKEN)")
	}
	if cfg.Telegram.Timeout <= 0 {
		return fmt.Errorf("telegram.timeout must be positive, got %d", cfg.Telegram.Timeout)
	}
	if cfg.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative, got %d", cfg.Telegram.MaxRetries)
	}
	return nil
}
