package stack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regstack-io/regstack/internal/ir"
)

func TestResolveToggles_Defaults(t *testing.T) {
	toggles, err := ResolveToggles(&ir.RegistryConfig{Name: "myrepo"})
	require.NoError(t, err)

	assert.Equal(t, "IMMUTABLE", toggles.ImageTagMutability)
	assert.False(t, toggles.EncryptionIsKms)
	assert.True(t, toggles.ScanOnPush)
	assert.Equal(t, "BASIC", toggles.ScanType)
	assert.Equal(t, ScanFrequencyContinuous, toggles.ScanFrequency)
	assert.False(t, toggles.CreatePublicRepo)
	assert.False(t, toggles.AttachRepositoryPolicy)
}

func TestResolveToggles_ExplicitValues(t *testing.T) {
	scanOnPush := false
	toggles, err := ResolveToggles(&ir.RegistryConfig{
		Name:                       "myrepo",
		ImageTagMutability:         "MUTABLE",
		EncryptionType:             EncryptionKMS,
		EnableScanningOnPush:       &scanOnPush,
		ScanType:                   "ENHANCED",
		ScanFrequency:              ScanFrequencyDaily,
		AllowedReadOnlyPrincipals:  []string{"arn:aws:iam::111122223333:root"},
		AllowedReadWritePrincipals: nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "MUTABLE", toggles.ImageTagMutability)
	assert.True(t, toggles.EncryptionIsKms)
	assert.False(t, toggles.ScanOnPush)
	assert.Equal(t, "ENHANCED", toggles.ScanType)
	assert.Equal(t, ScanFrequencyDaily, toggles.ScanFrequency)
	assert.True(t, toggles.AttachRepositoryPolicy)
}

func TestResolveToggles_EnumViolations(t *testing.T) {
	tests := []struct {
		name  string
		cfg   ir.RegistryConfig
		field string
		value string
	}{
		{"bad mutability", ir.RegistryConfig{Name: "r", ImageTagMutability: "FROZEN"}, "imageTagMutability", "FROZEN"},
		{"bad encryption", ir.RegistryConfig{Name: "r", EncryptionType: "ROT13"}, "encryptionType", "ROT13"},
		{"bad scan type", ir.RegistryConfig{Name: "r", ScanType: "DEEP"}, "scanType", "DEEP"},
		{"bad scan frequency", ir.RegistryConfig{Name: "r", ScanFrequency: "HOURLY"}, "scanFrequency", "HOURLY"},
		{"lowercase is not normalized", ir.RegistryConfig{Name: "r", ImageTagMutability: "immutable"}, "imageTagMutability", "immutable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveToggles(&tt.cfg)
			require.Error(t, err)

			var valErr *ir.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
			assert.Equal(t, tt.value, valErr.Value)
			assert.NotEmpty(t, valErr.Allowed)
		})
	}
}

func TestResolveToggles_NameRequired(t *testing.T) {
	_, err := ResolveToggles(&ir.RegistryConfig{Name: "  "})
	require.Error(t, err)

	var valErr *ir.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "name", valErr.Field)
}

func TestOverrideWarnings(t *testing.T) {
	malformed := "arn:x"
	valid := "arn:aws:kms:us-east-1:111122223333:key/abc"
	keyID := "1234abcd-12ab-34cd-56ef-1234567890ab"

	tests := []struct {
		name string
		cfg  ir.RegistryConfig
		want int
	}{
		{"no overrides", ir.RegistryConfig{Name: "r"}, 0},
		{"valid arn", ir.RegistryConfig{Name: "r", KmsKeyOverride: &valid}, 0},
		{"plain key id passes", ir.RegistryConfig{Name: "r", KmsKeyOverride: &keyID}, 0},
		{"malformed key arn", ir.RegistryConfig{Name: "r", KmsKeyOverride: &malformed}, 1},
		{"malformed signing arn", ir.RegistryConfig{Name: "r", ExistingSigningProfileOverride: &malformed}, 1},
		{"malformed audit role", ir.RegistryConfig{Name: "r", AuditRoleArn: malformed}, 1},
		{"all malformed", ir.RegistryConfig{Name: "r", KmsKeyOverride: &malformed, ExistingSigningProfileOverride: &malformed, AuditRoleArn: malformed}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, OverrideWarnings(&tt.cfg), tt.want)
		})
	}
}
