package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Origens possíveis do snapshot
const (
	DataSourceFixture  = "fixture"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
	Sessions     Sessions     `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	DataSource  string `mapstructure:"data_source"`
	FixturePath string `mapstructure:"fixture_path"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret       string        `mapstructure:"auth_secret"`
	Email        string        `mapstructure:"auth_email"`
	PasswordHash string        `mapstructure:"auth_password_hash"`
	TokenTTL     time.Duration `mapstructure:"auth_token_ttl"`
}

type SnapshotSync struct {
	CronSchedule string `mapstructure:"snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"snapshot_sync_enabled"`
}

type Sessions struct {
	IdleTimeout     time.Duration `mapstructure:"session_idle_timeout"`
	CleanupInterval time.Duration `mapstructure:"session_cleanup_interval"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", 8000)
	v.SetDefault("ALLOWED_ORIGINS", "*")

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "localhost:5432/traffic?sslmode=disable")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "root")

	v.SetDefault("DATA_SOURCE", DataSourceFixture)
	v.SetDefault("FIXTURE_PATH", "testdata/snapshot.yaml")

	v.SetDefault("AUTH_SECRET", "your_secret_key")
	v.SetDefault("AUTH_EMAIL", "")
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")

	// Defaults para recarga do snapshot
	v.SetDefault("SNAPSHOT_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	v.SetDefault("SNAPSHOT_SYNC_ENABLED", true)

	// Defaults para limpeza de sessões
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "5m")

	v.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	v := viper.New()

	// Configurar valores padrão
	SetDefaults(v)

	// Configurar o Viper
	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := v.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.App.DataSource = strings.ToLower(strings.TrimSpace(config.App.DataSource))
	if config.App.DataSource != DataSourceFixture && config.App.DataSource != DataSourcePostgres {
		return nil, fmt.Errorf("config: invalid DATA_SOURCE %q (use %q or %q)", config.App.DataSource, DataSourceFixture, DataSourcePostgres)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
