package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8080"`
	DBPath          string `env:"DB_PATH" envDefault:"mindfit.db"`
	DatabaseURL     string `env:"DATABASE_URL"` // opcional: backend Postgres en lugar de SQLite
	LLMAPIKey       string `env:"LLM_API_KEY,required"`
	LLMBaseURL      string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel        string `env:"LLM_MODEL" envDefault:"gpt-5.1"`
	ImageGenBaseURL string `env:"IMAGEGEN_BASE_URL" envDefault:"https://image.pollinations.ai"`

	AuthSecret           string `env:"AUTH_SECRET"`
	AuthPINHash          string `env:"AUTH_PIN_HASH"` // bcrypt del PIN de acceso
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LookRateWindowMinutes int `env:"LOOK_RATE_WINDOW_MINUTES" envDefault:"10"`
	LookRateMax           int `env:"LOOK_RATE_MAX" envDefault:"20"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
