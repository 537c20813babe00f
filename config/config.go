package config

import "github.com/ilyakaznacheev/cleanenv"

// Config is populated from the environment (a .env file is loaded in main
// before this runs, so local dev and production read the same way).
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	JWTSecret   string `env:"JWT_SECRET" env-required:"true"`
	AdminAPIKey string `env:"ADMIN_API_KEY" env-required:"true"`

	// DATABASE_URL wins when set; otherwise the discrete DB_* vars are used.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" env-default:"localhost"`
	DBPort      string `env:"DB_PORT" env-default:"5432"`
	DBUser      string `env:"DB_USER" env-default:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" env-default:"shopsphere"`

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" env-default:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
