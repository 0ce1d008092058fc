package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"checkout": map[string]any{
			"shippingFee": 0,
		},
		"identity": map[string]any{
			"superAdminEmails": []any{},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "CHECKOUT_SHIPPINGFEE", want: "checkout.shippingFee"},
		{envKey: "IDENTITY_SUPERADMINEMAILS", want: "identity.superAdminEmails"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte("env:\n  env: develop\ncheckout:\n  shippingFee: 100\n  taxRateBasisPoints: 0\ncatalog:\n  maxPageSize: 50\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront-test.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("CHECKOUT_SHIPPINGFEE", "250")

	cfg, err := LoadWithEnv[Config]("storefront-test")
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Env.Env)
	require.NotNil(t, cfg.Checkout)
	assert.Equal(t, int64(250), cfg.Checkout.ShippingFee)
	assert.Equal(t, 50, cfg.Catalog.MaxPageSize)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultLogBufferSize, cfg.Env.Log.BufferSize)
	assert.Equal(t, defaultOrderNumberTries, cfg.Checkout.OrderNumberAttempts)
	assert.Equal(t, defaultPageSize, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, defaultMaxPageSize, cfg.Catalog.MaxPageSize)
	assert.Equal(t, int64(0), cfg.Checkout.TaxRateBasisPoints)
	assert.Equal(t, int64(0), cfg.Checkout.ShippingFee)
	assert.NotNil(t, cfg.Identity)
	assert.NotNil(t, cfg.Storage)
}

func TestIdentityConfig_IsSuperAdminEmail(t *testing.T) {
	c := &IdentityConfig{SuperAdminEmails: []string{" Owner@Example.com "}}

	assert.True(t, c.IsSuperAdminEmail("owner@example.com"))
	assert.False(t, c.IsSuperAdminEmail("someone@example.com"))
	assert.False(t, c.IsSuperAdminEmail(""))

	var nilCfg *IdentityConfig
	assert.False(t, nilCfg.IsSuperAdminEmail("owner@example.com"))
}
