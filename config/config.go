package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultBcryptCost      = 12
	defaultSessionTTL      = time.Hour
	defaultSecondFactorTTL = 5 * time.Minute
	defaultSweepInterval   = time.Minute
	defaultClientBuffer    = 256
	defaultMailTimeout     = 10 * time.Second
	defaultMailQueueSize   = 100
)

// Second-factor registry backends.
const (
	SecondFactorBackendMemory = "memory"
	SecondFactorBackendRedis  = "redis"
)

// Mail providers.
const (
	MailProviderLog      = "log"
	MailProviderSMTP     = "smtp"
	MailProviderSendGrid = "sendgrid"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int        `json:"port" yaml:"port"`
		MaxRequestBodySize string     `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowedOrigins     []string   `json:"allowedOrigins" yaml:"allowedOrigins"`
		TLS                *TLSConfig `json:"tls" yaml:"tls"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	SecretKey struct {
		// Session signs the HS256 session tokens.
		Session string `json:"session" yaml:"session"`
		// ModelAPIKey is the shared secret presented by the inference service.
		ModelAPIKey string `json:"modelApiKey" yaml:"modelApiKey"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	SecondFactor *SecondFactorConfig `json:"secondFactor" yaml:"secondFactor"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Mail *MailConfig `json:"mail" yaml:"mail"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	// Firebase configuration for mobile push of new notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for relaying notification events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Realtime *RealtimeConfig `json:"realtime" yaml:"realtime"`

	// Bootstrap seeds the first SUPERADMIN on an empty store
	Bootstrap *BootstrapConfig `json:"bootstrap" yaml:"bootstrap"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

type TLSConfig struct {
	CertFile string `json:"certFile" yaml:"certFile"`
	KeyFile  string `json:"keyFile" yaml:"keyFile"`
}

type DatabaseConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost      int           `json:"bcryptCost" yaml:"bcryptCost"`
	SessionTTL      time.Duration `json:"sessionTTL" yaml:"sessionTTL"`
	SecondFactorTTL time.Duration `json:"secondFactorTTL" yaml:"secondFactorTTL"`
	SweepInterval   time.Duration `json:"sweepInterval" yaml:"sweepInterval"`

	// ExposeCodeInResponse echoes the issued code back in the login and
	// reset responses. Only meant for local development.
	ExposeCodeInResponse bool `json:"exposeCodeInResponse" yaml:"exposeCodeInResponse"`
}

// SecondFactorConfig selects where issued codes are kept
type SecondFactorConfig struct {
	// Backend is "memory" (single instance) or "redis" (shared across instances)
	Backend   string `json:"backend" yaml:"backend"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// MailConfig defines outbound mail delivery
type MailConfig struct {
	// Provider is one of "log", "smtp", "sendgrid"
	Provider  string          `json:"provider" yaml:"provider"`
	From      string          `json:"from" yaml:"from"`
	FromName  string          `json:"fromName" yaml:"fromName"`
	Timeout   time.Duration   `json:"timeout" yaml:"timeout"`
	QueueSize int             `json:"queueSize" yaml:"queueSize"`
	SMTP      *SMTPConfig     `json:"smtp" yaml:"smtp"`
	SendGrid  *SendGridConfig `json:"sendgrid" yaml:"sendgrid"`
}

type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

type SendGridConfig struct {
	APIKey string `json:"apiKey" yaml:"apiKey"`
}

type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
	// Topic receives every published notification
	Topic string `json:"topic" yaml:"topic"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

type RealtimeConfig struct {
	// ClientBuffer bounds the outgoing queue of each live connection
	ClientBuffer int `json:"clientBuffer" yaml:"clientBuffer"`
}

type BootstrapConfig struct {
	Names    string `json:"names" yaml:"names"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Password string `json:"password" yaml:"password"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, err := findConfigFile(currEnv, searchPaths)
	if err != nil {
		return nil, err
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment overrides follow the YAML key casing, e.g.
	// SECRETKEY_MODELAPIKEY -> secretKey.modelApiKey
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(currEnv string, searchPaths []string) (string, error) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = defaultSessionTTL
	}
	if cfg.Auth.SecondFactorTTL <= 0 {
		cfg.Auth.SecondFactorTTL = defaultSecondFactorTTL
	}
	if cfg.Auth.SweepInterval <= 0 {
		cfg.Auth.SweepInterval = defaultSweepInterval
	}

	if cfg.SecondFactor == nil {
		cfg.SecondFactor = &SecondFactorConfig{}
	}
	if cfg.SecondFactor.Backend == "" {
		cfg.SecondFactor.Backend = SecondFactorBackendMemory
	}

	if cfg.Mail == nil {
		cfg.Mail = &MailConfig{}
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = MailProviderLog
	}
	if cfg.Mail.Timeout <= 0 {
		cfg.Mail.Timeout = defaultMailTimeout
	}
	if cfg.Mail.QueueSize <= 0 {
		cfg.Mail.QueueSize = defaultMailQueueSize
	}

	if cfg.Realtime == nil {
		cfg.Realtime = &RealtimeConfig{}
	}
	if cfg.Realtime.ClientBuffer <= 0 {
		cfg.Realtime.ClientBuffer = defaultClientBuffer
	}
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.SecretKey.Session) == "" {
		return errors.New("secretKey.session is required")
	}

	switch cfg.SecondFactor.Backend {
	case SecondFactorBackendMemory:
	case SecondFactorBackendRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis second factor backend")
		}
	default:
		return errors.Errorf("unsupported second factor backend: %s", cfg.SecondFactor.Backend)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}
// until the first incomplete index.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
