package stack

import (
	"fmt"
	"sort"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"

	"github.com/regstack-io/regstack/internal/ir"
	"github.com/regstack-io/regstack/internal/logging"
)

// Env is the process-wide provider context (region and friends), threaded
// explicitly through the builder instead of read from ambient state so the
// core stays pure and testable.
type Env struct {
	Region string
}

const (
	signingNamePrefix = "ecr-container-signing-"
	signingPlatformID = "Notation-OCI-SHA384-ECDSA-P384"

	defaultAuditRetentionDays = 90
)

// Build assembles the ordered intent set for one registry stack. It is a
// single deterministic pass: the same Env and config always produce a
// byte-identical intent set, so re-running against already-materialized
// state never creates duplicates.
func Build(env Env, cfg *ir.RegistryConfig) (*ir.IntentSet, error) {
	toggles, err := ResolveToggles(cfg)
	if err != nil {
		return nil, err
	}
	names := ComposeNames(cfg.EnvAbbr, cfg.Name)

	var intents []*ir.ResourceIntent
	emit := func(in *ir.ResourceIntent) {
		intents = append(intents, in)
	}

	// Encryption key. Created only when KMS encryption is requested with no
	// override; an override puts the key in reuse mode. AES256 stacks have
	// no key node at all.
	keyEff := ir.Absent()
	if toggles.EncryptionIsKms {
		res, err := PlanManaged("kmsKeyOverride", cfg.KmsKeyOverride == nil, cfg.KmsKeyOverride, func() (*ir.ResourceIntent, string) {
			key := &ir.ResourceIntent{
				Kind: ir.KindKmsKey,
				Name: names.Canonical,
				Properties: map[string]any{
					"description":       fmt.Sprintf("encryption key for registry %s", names.Canonical),
					"keySpec":           string(kmstypes.KeySpecSymmetricDefault),
					"keyUsage":          string(kmstypes.KeyUsageTypeEncryptDecrypt),
					"enableKeyRotation": true,
				},
			}
			return key, Ref(ir.KindKmsKey, names.Canonical, "arn")
		})
		if err != nil {
			return nil, err
		}
		if res.Intent != nil {
			emit(res.Intent)
			emit(&ir.ResourceIntent{
				Kind: ir.KindKmsAlias,
				Name: names.Canonical,
				Properties: map[string]any{
					"aliasName":   "alias/" + names.Canonical,
					"targetKeyId": Ref(ir.KindKmsKey, names.Canonical, "id"),
				},
			})
		}
		keyEff = res.Effective
	}

	// Private repository, the only unconditional node. The key edge exists
	// only when the key is internally created: an override is a literal
	// identifier, not a graph reference.
	encryption := map[string]any{
		"encryptionType": string(ecrtypes.EncryptionTypeAes256),
	}
	if toggles.EncryptionIsKms {
		encryption["encryptionType"] = string(ecrtypes.EncryptionTypeKms)
		if keyEff.Present() {
			encryption["kmsKey"] = keyEff.Value
		}
	}
	emit(&ir.ResourceIntent{
		Kind: ir.KindRepository,
		Name: names.Canonical,
		Properties: map[string]any{
			"repositoryName":          names.Canonical,
			"imageTagMutability":      toggles.ImageTagMutability,
			"scanOnPush":              toggles.ScanOnPush,
			"scanType":                toggles.ScanType,
			"scanFrequency":           toggles.ScanFrequency,
			"encryptionConfiguration": encryption,
		},
	})
	repoNameRef := Ref(ir.KindRepository, names.Canonical, "name")

	publicEff := ir.Absent()
	if toggles.CreatePublicRepo {
		emit(&ir.ResourceIntent{
			Kind: ir.KindPublicRepository,
			Name: names.Canonical,
			Properties: map[string]any{
				"repositoryName": names.Canonical,
			},
		})
		publicEff = ir.Created(Ref(ir.KindPublicRepository, names.Canonical, "uri"))
	}

	if toggles.CreateLifecyclePolicy {
		emit(&ir.ResourceIntent{
			Kind: ir.KindLifecyclePolicy,
			Name: names.Canonical,
			Properties: map[string]any{
				"repositoryName": repoNameRef,
				"policyText":     cfg.LifecyclePolicyBody,
			},
		})
	}

	// Repository policy exists only when synthesis yields a document;
	// an empty principal set produces nothing.
	if doc := SynthesizeRepositoryAccess(cfg.AllowedReadOnlyPrincipals, cfg.AllowedReadWritePrincipals); doc != nil {
		emit(&ir.ResourceIntent{
			Kind: ir.KindRepositoryPolicy,
			Name: names.Canonical,
			Properties: map[string]any{
				"repositoryName": repoNameRef,
				"policyDocument": doc,
			},
		})
	}

	if cfg.RegistryPolicyBody != "" {
		emit(&ir.ResourceIntent{
			Kind:      ir.KindRegistryPolicy,
			Name:      names.Canonical,
			DependsOn: []string{ir.KindRepository + "." + names.Canonical},
			Properties: map[string]any{
				"policyText": cfg.RegistryPolicyBody,
			},
		})
	}

	// Pull-through cache rules are addressed by prefix, so reordering the
	// input list never recreates unrelated entries.
	rules := append([]*ir.PullThroughCacheRule{}, cfg.PullThroughCacheRules...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Prefix < rules[j].Prefix })
	for _, rule := range rules {
		emit(&ir.ResourceIntent{
			Kind:      ir.KindPullThroughRule,
			Name:      rule.Prefix,
			DependsOn: []string{ir.KindRepository + "." + names.Canonical},
			Properties: map[string]any{
				"ecrRepositoryPrefix": rule.Prefix,
				"upstreamRegistryUrl": rule.UpstreamURL,
			},
		})
	}

	// Replication destinations are addressed by region for the same reason.
	regions := append([]string{}, cfg.ReplicationRegions...)
	sort.Strings(regions)
	for _, region := range regions {
		emit(&ir.ResourceIntent{
			Kind: ir.KindReplicationDestination,
			Name: region,
			Properties: map[string]any{
				"region": region,
			},
		})
	}

	var endpointIDs []string
	if toggles.CreateVpcEndpoints {
		eps, err := endpointIntents(env, names, cfg)
		if err != nil {
			return nil, err
		}
		for _, ep := range eps {
			emit(ep)
			endpointIDs = append(endpointIDs, Ref(ir.KindVpcEndpoint, ep.Name, "id"))
		}
	}

	// Signing profile: created when enabled; reused when only an override is
	// supplied; absent when neither.
	signEff := ir.Absent()
	if toggles.EnableSigningProfile || cfg.ExistingSigningProfileOverride != nil {
		profileName := ComposeRestricted(signingNamePrefix + names.Canonical)
		res, err := PlanManaged("existingSigningProfileOverride", toggles.EnableSigningProfile, cfg.ExistingSigningProfileOverride, func() (*ir.ResourceIntent, string) {
			profile := &ir.ResourceIntent{
				Kind: ir.KindSigningProfile,
				Name: profileName,
				Properties: map[string]any{
					"profileName": profileName,
					"platformId":  signingPlatformID,
				},
			}
			return profile, Ref(ir.KindSigningProfile, profileName, "arn")
		})
		if err != nil {
			return nil, err
		}
		if res.Intent != nil {
			emit(res.Intent)
		}
		signEff = res.Effective
	}

	if toggles.CreateAuditTrail {
		trail, logGroup, err := auditIntents(names, cfg, keyEff)
		if err != nil {
			return nil, err
		}
		emit(logGroup)
		emit(trail)
	}

	set := &ir.IntentSet{
		Intents: intents,
		Bindings: &ir.Bindings{
			RepositoryURI:       Ref(ir.KindRepository, names.Canonical, "uri"),
			PublicRepositoryURI: publicEff,
			KmsKeyID:            keyEff,
			SigningProfileARN:   signEff,
			VpcEndpointIDs:      endpointIDs,
		},
	}

	// Static traversal of everything just built: acyclic, and no edge may
	// target a node whose cardinality resolved to zero.
	if _, err := BuildDAG(set.Intents); err != nil {
		return nil, err
	}

	logging.Debug("composed intent set", "name", names.Canonical, "intents", len(set.Intents))
	return set, nil
}

// endpointIntents declares the network path into the registry: interface
// endpoints for the registry API and the Docker data plane, and a gateway
// endpoint for the layer-storage service.
func endpointIntents(env Env, names ir.NamingResult, cfg *ir.RegistryConfig) ([]*ir.ResourceIntent, error) {
	if env.Region == "" {
		return nil, &ir.MissingReferenceError{Field: "region", Mode: "createVpcEndpoints"}
	}
	if cfg.VpcID == "" {
		return nil, &ir.MissingReferenceError{Field: "vpcId", Mode: "createVpcEndpoints"}
	}

	iface := func(suffix, service string) *ir.ResourceIntent {
		return &ir.ResourceIntent{
			Kind: ir.KindVpcEndpoint,
			Name: names.Canonical + "-" + suffix,
			Properties: map[string]any{
				"vpcId":             cfg.VpcID,
				"serviceName":       fmt.Sprintf("com.amazonaws.%s.%s", env.Region, service),
				"vpcEndpointType":   string(ec2types.VpcEndpointTypeInterface),
				"subnetIds":         append([]string{}, cfg.SubnetIDs...),
				"securityGroupIds":  append([]string{}, cfg.SecurityGroupIDs...),
				"privateDnsEnabled": true,
			},
		}
	}

	return []*ir.ResourceIntent{
		iface("api", "ecr.api"),
		iface("dkr", "ecr.dkr"),
		{
			Kind: ir.KindVpcEndpoint,
			Name: names.Canonical + "-s3",
			Properties: map[string]any{
				"vpcId":           cfg.VpcID,
				"serviceName":     fmt.Sprintf("com.amazonaws.%s.s3", env.Region),
				"vpcEndpointType": string(ec2types.VpcEndpointTypeGateway),
				"routeTableIds":   append([]string{}, cfg.RouteTableIDs...),
			},
		},
	}, nil
}

// auditIntents declares the audit branch: a log group feeding a trail. The
// trail also consumes the effective encryption key when one is in play.
func auditIntents(names ir.NamingResult, cfg *ir.RegistryConfig, keyEff ir.EffectiveValue) (trail, logGroup *ir.ResourceIntent, err error) {
	if cfg.AuditBucketName == "" {
		return nil, nil, &ir.MissingReferenceError{Field: "auditBucketName", Mode: "createAuditTrail"}
	}

	retention := cfg.AuditRetentionDays
	if retention <= 0 {
		retention = defaultAuditRetentionDays
	}

	logGroup = &ir.ResourceIntent{
		Kind: ir.KindLogGroup,
		Name: names.Canonical,
		Properties: map[string]any{
			"logGroupName":    "/aws/cloudtrail/" + names.Canonical,
			"retentionInDays": retention,
		},
	}

	trailProps := map[string]any{
		"trailName":                 names.Canonical,
		"s3BucketName":              cfg.AuditBucketName,
		"enableLogFileValidation":   true,
		"isMultiRegionTrail":        false,
		"cloudWatchLogsLogGroupArn": Ref(ir.KindLogGroup, names.Canonical, "arn"),
	}
	if cfg.AuditRoleArn != "" {
		trailProps["cloudWatchLogsRoleArn"] = cfg.AuditRoleArn
	}
	if keyEff.Present() {
		trailProps["kmsKeyId"] = keyEff.Value
	}

	trail = &ir.ResourceIntent{
		Kind:       ir.KindTrail,
		Name:       names.Canonical,
		Properties: trailProps,
	}
	return trail, logGroup, nil
}
