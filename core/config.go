package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		WorkDir      string
		RollbarToken string

		Server     ServerConfig
		Database   DatabaseConfig
		Mongo      MongoConfig
		Redis      RedisConfig
		Leave      LeaveConfig
		Calendar   CalendarConfig
		Pagination PaginationConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	MongoConfig struct {
		URI      string
		Database string
		Timeout  time.Duration
	}

	RedisConfig struct {
		Address   string
		NotifyKey string
	}

	LeaveConfig struct {
		ReasonMinLength int
		// Allowances maps a leave category to its yearly allowance in days; a negative value means unlimited.
		Allowances map[string]float64
	}

	CalendarConfig struct {
		// Holidays maps YYYY-MM-DD dates to the holiday's name.
		Holidays map[string]string
	}

	PaginationConfig struct {
		DefaultSize int
		MaxSize     int
	}
)

func (dbConf DatabaseConfig) Address() string {
	return net.JoinHostPort(dbConf.Host, strconv.Itoa(dbConf.Port))
}

// NewConfig loads the configuration from defaults, an optional config/.env.<env> file and the environment.
// Environment variables are prefixed with the upper-cased env name, eg: DEV_DATABASE_HOST.
func NewConfig() *Config {
	v := viper.New()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	wd := Getwd()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "E-Campus")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "ecampus")
	v.SetDefault("database.user", "ecampus")
	v.SetDefault("database.password", "ecampus")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "postgres")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "ecampus")
	v.SetDefault("mongo.timeout", 5*time.Second)
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.notifyKey", "ecampus:notifications")
	v.SetDefault("leave.reasonMinLength", 10)
	v.SetDefault("pagination.defaultSize", 10)
	v.SetDefault("pagination.maxSize", 100)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		WorkDir:      wd,
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetInt("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
			Timeout:  v.GetDuration("mongo.timeout"),
		},
		Redis: RedisConfig{
			Address:   v.GetString("redis.address"),
			NotifyKey: v.GetString("redis.notifyKey"),
		},
		Leave: LeaveConfig{
			ReasonMinLength: v.GetInt("leave.reasonMinLength"),
			Allowances:      allowances(v.GetStringMapString("leave.allowances")),
		},
		Calendar: CalendarConfig{
			Holidays: v.GetStringMapString("calendar.holidays"),
		},
		Pagination: PaginationConfig{
			DefaultSize: v.GetInt("pagination.defaultSize"),
			MaxSize:     v.GetInt("pagination.maxSize"),
		},
	}
}

// allowances parses overrides such as {"casual": "14", "unpaid": "unlimited"}; invalid entries are skipped.
func allowances(raw map[string]string) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	res := make(map[string]float64, len(raw))
	for cat, val := range raw {
		val = CleanString(val, true)
		if val == "unlimited" {
			res[CleanString(cat, true)] = -1
			continue
		}
		if days, err := strconv.ParseFloat(val, 64); err == nil && days >= 0 {
			res[CleanString(cat, true)] = days
		}
	}
	return res
}
