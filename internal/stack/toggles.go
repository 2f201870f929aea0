package stack

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/regstack-io/regstack/internal/ir"
)

// Enum domains. Mutability and scan type mirror the ECR API enums; the scan
// frequency is the registry-level scanning schedule.
const (
	EncryptionAES256 = string(ecrtypes.EncryptionTypeAes256)
	EncryptionKMS    = string(ecrtypes.EncryptionTypeKms)

	ScanFrequencyContinuous = "CONTINUOUS"
	ScanFrequencyDaily      = "DAILY"
)

var (
	allowedMutability = []string{
		string(ecrtypes.ImageTagMutabilityImmutable),
		string(ecrtypes.ImageTagMutabilityMutable),
	}
	allowedEncryption = []string{EncryptionAES256, EncryptionKMS}
	allowedScanTypes  = []string{
		string(ecrtypes.ScanTypeBasic),
		string(ecrtypes.ScanTypeEnhanced),
	}
	allowedScanFrequencies = []string{ScanFrequencyContinuous, ScanFrequencyDaily}
)

// ToggleSet is the canonical decision set derived from a RegistryConfig.
// Every enum field holds only a value from its allowed domain; violations
// surface as ValidationError during resolution, never later.
type ToggleSet struct {
	EncryptionIsKms        bool
	CreatePublicRepo       bool
	CreateLifecyclePolicy  bool
	CreateVpcEndpoints     bool
	EnableSigningProfile   bool
	CreateAuditTrail       bool
	AttachRepositoryPolicy bool

	ImageTagMutability string
	ScanOnPush         bool
	ScanType           string
	ScanFrequency      string
}

// ResolveToggles validates and normalizes the raw configuration. It is a
// pure function and fails fast: the first out-of-domain value aborts before
// any resource logic runs.
func ResolveToggles(cfg *ir.RegistryConfig) (*ToggleSet, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, &ir.ValidationError{Field: "name", Value: cfg.Name}
	}

	mutability, err := normalizeEnum("imageTagMutability", cfg.ImageTagMutability, string(ecrtypes.ImageTagMutabilityImmutable), allowedMutability)
	if err != nil {
		return nil, err
	}
	encryption, err := normalizeEnum("encryptionType", cfg.EncryptionType, EncryptionAES256, allowedEncryption)
	if err != nil {
		return nil, err
	}
	scanType, err := normalizeEnum("scanType", cfg.ScanType, string(ecrtypes.ScanTypeBasic), allowedScanTypes)
	if err != nil {
		return nil, err
	}
	scanFrequency, err := normalizeEnum("scanFrequency", cfg.ScanFrequency, ScanFrequencyContinuous, allowedScanFrequencies)
	if err != nil {
		return nil, err
	}

	scanOnPush := true
	if cfg.EnableScanningOnPush != nil {
		scanOnPush = *cfg.EnableScanningOnPush
	}

	return &ToggleSet{
		EncryptionIsKms:        encryption == EncryptionKMS,
		CreatePublicRepo:       cfg.CreatePublicRepo,
		CreateLifecyclePolicy:  cfg.CreateLifecyclePolicy,
		CreateVpcEndpoints:     cfg.CreateVpcEndpoints,
		EnableSigningProfile:   cfg.EnableSigningProfile,
		CreateAuditTrail:       cfg.CreateAuditTrail,
		AttachRepositoryPolicy: len(cfg.AllowedReadOnlyPrincipals)+len(cfg.AllowedReadWritePrincipals) > 0,
		ImageTagMutability:     mutability,
		ScanOnPush:             scanOnPush,
		ScanType:               scanType,
		ScanFrequency:          scanFrequency,
	}, nil
}

// normalizeEnum applies the default for an empty value and checks domain
// membership for everything else.
func normalizeEnum(field, value, fallback string, allowed []string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", &ir.ValidationError{Field: field, Value: value, Allowed: allowed}
}

// OverrideWarnings reports override identifiers that claim to be ARNs but do
// not parse as one. Reuse mode treats identifiers as opaque, so a malformed
// override is not fatal, only worth surfacing before an apply.
func OverrideWarnings(cfg *ir.RegistryConfig) []string {
	var warnings []string
	check := func(field string, value *string) {
		if value != nil && strings.HasPrefix(*value, "arn:") && !arn.IsARN(*value) {
			warnings = append(warnings, fmt.Sprintf("%s: %q does not parse as an ARN", field, *value))
		}
	}
	check("kmsKeyOverride", cfg.KmsKeyOverride)
	check("existingSigningProfileOverride", cfg.ExistingSigningProfileOverride)
	if cfg.AuditRoleArn != "" {
		check("auditRoleArn", &cfg.AuditRoleArn)
	}
	return warnings
}
