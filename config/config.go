package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
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
	defaultLogBufferSize      = 500
	defaultPageSize           = 12
	defaultMaxPageSize        = 50
	defaultMaxImageBytes      = 5 << 20
	defaultOrderNumberTries   = 5
	defaultQRCodeSize         = 256
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Worker is the HTTP listener of the async worker
	Worker HTTPConfig `json:"worker" yaml:"worker"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// AutoMigrate creates and updates the schema on startup
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`

	Identity *IdentityConfig `json:"identity" yaml:"identity"`

	// Firebase configuration for identity and push notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	// Storage configuration for catalog images
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`

	// QRCode configuration for order QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// HTTPConfig describes one HTTP listener
type HTTPConfig struct {
	Port               int    `json:"port" yaml:"port"`
	MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	Timeouts           struct {
		ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	} `json:"timeouts" yaml:"timeouts"`
	// AllowOrigins lists the CORS origins. Empty allows any origin.
	AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// BufferSize is the number of recent records kept for the admin log viewer
	BufferSize int `json:"bufferSize" yaml:"bufferSize"`
}

// IdentityConfig defines how bearer tokens are verified
type IdentityConfig struct {
	// Provider type: "firebase" or "jwt"
	Provider string `json:"provider" yaml:"provider"`

	// JWTSecret is the HS256 key for the jwt provider
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`

	// JWTIssuer, when set, must match the iss claim
	JWTIssuer string `json:"jwtIssuer" yaml:"jwtIssuer"`

	// SuperAdminEmails are granted SUPER_ADMIN when their account is first created
	SuperAdminEmails []string `json:"superAdminEmails" yaml:"superAdminEmails"`
}

// FirebaseConfig defines Firebase configuration
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub. Empty disables publishing.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// VerifyPush enables OIDC verification of push and scheduled task requests on the worker
	VerifyPush bool `json:"verifyPush" yaml:"verifyPush"`

	// PushAudience is the expected audience of push OIDC tokens
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`

	// TaskAudience is the expected audience of Cloud Scheduler OIDC tokens on /tasks routes
	TaskAudience string `json:"taskAudience" yaml:"taskAudience"`
}

// NotificationConfig defines where order notifications go
type NotificationConfig struct {
	// AdminTopic is the FCM topic admin devices subscribe to. Empty disables notifications.
	AdminTopic string `json:"adminTopic" yaml:"adminTopic"`
}

// StorageConfig defines the blob bucket for catalog images
type StorageConfig struct {
	// BucketURL is a gocloud.dev URL such as file:///var/data/images, mem://, gs://bucket or s3://bucket
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL prefixes object keys to build public image URLs
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`

	MaxImageBytes int `json:"maxImageBytes" yaml:"maxImageBytes"`

	// StaticDir, when set, is served under /static/images. Used with file:// buckets in development.
	StaticDir string `json:"staticDir" yaml:"staticDir"`
}

// CheckoutConfig defines order pricing rules
type CheckoutConfig struct {
	// TaxRateBasisPoints is the tax rate in 1/100 of a percent
	TaxRateBasisPoints int64 `json:"taxRateBasisPoints" yaml:"taxRateBasisPoints"`

	// ShippingFee is charged below FreeShippingThreshold
	ShippingFee int64 `json:"shippingFee" yaml:"shippingFee"`

	// FreeShippingThreshold waives shipping at or above this subtotal. Zero always waives it.
	FreeShippingThreshold int64 `json:"freeShippingThreshold" yaml:"freeShippingThreshold"`

	OrderNumberAttempts int `json:"orderNumberAttempts" yaml:"orderNumberAttempts"`
}

// CatalogConfig defines catalog listing rules
type CatalogConfig struct {
	LowStockThreshold int `json:"lowStockThreshold" yaml:"lowStockThreshold"`
	NewProductDays    int `json:"newProductDays" yaml:"newProductDays"`
	BestsellerMinSold int `json:"bestsellerMinSold" yaml:"bestsellerMinSold"`
	DefaultPageSize   int `json:"defaultPageSize" yaml:"defaultPageSize"`
	MaxPageSize       int `json:"maxPageSize" yaml:"maxPageSize"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	configFile, err := findConfigFile(currEnv, configPath...)
	if err != nil {
		return nil, err
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// CHECKOUT_SHIPPINGFEE -> checkout.shippingFee
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

func findConfigFile(currEnv string, configPath ...string) (string, error) {
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", currEnv)
}

func New() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section so consumers never see nil.
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if strings.TrimSpace(cfg.Worker.MaxRequestBodySize) == "" {
		cfg.Worker.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Env.Log.BufferSize <= 0 {
		cfg.Env.Log.BufferSize = defaultLogBufferSize
	}
	if cfg.Identity == nil {
		cfg.Identity = &IdentityConfig{}
	}
	if cfg.Firebase == nil {
		cfg.Firebase = &FirebaseConfig{}
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{}
	}
	if cfg.Notification == nil {
		cfg.Notification = &NotificationConfig{}
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if cfg.Storage.MaxImageBytes <= 0 {
		cfg.Storage.MaxImageBytes = defaultMaxImageBytes
	}
	if cfg.Checkout == nil {
		cfg.Checkout = &CheckoutConfig{}
	}
	if cfg.Checkout.OrderNumberAttempts <= 0 {
		cfg.Checkout.OrderNumberAttempts = defaultOrderNumberTries
	}
	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
	if cfg.Catalog.DefaultPageSize <= 0 {
		cfg.Catalog.DefaultPageSize = defaultPageSize
	}
	if cfg.Catalog.MaxPageSize <= 0 {
		cfg.Catalog.MaxPageSize = defaultMaxPageSize
	}
	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{}
	}
	if cfg.QRCode.Size <= 0 {
		cfg.QRCode.Size = defaultQRCodeSize
	}
}

// IsSuperAdminEmail reports whether email is listed in identity.superAdminEmails.
func (c *IdentityConfig) IsSuperAdminEmail(email string) bool {
	if c == nil || email == "" {
		return false
	}
	for _, candidate := range c.SuperAdminEmails {
		if strings.EqualFold(strings.TrimSpace(candidate), email) {
			return true
		}
	}

	return false
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

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
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
