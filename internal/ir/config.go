package ir

// RegistryConfig is the raw, user-supplied stack configuration. Fields map
// 1:1 onto the Pkl module schema; nothing here is validated yet. Toggle
// resolution owns validation and defaulting.
type RegistryConfig struct {
	Name    string `pkl:"name"`
	EnvAbbr string `pkl:"envAbbr"`

	ImageTagMutability string  `pkl:"imageTagMutability"`
	EncryptionType     string  `pkl:"encryptionType"`
	KmsKeyOverride     *string `pkl:"kmsKeyOverride"`

	EnableScanningOnPush *bool  `pkl:"enableScanningOnPush"`
	ScanType             string `pkl:"scanType"`
	ScanFrequency        string `pkl:"scanFrequency"`

	CreatePublicRepo bool `pkl:"createPublicRepo"`

	CreateLifecyclePolicy bool   `pkl:"createLifecyclePolicy"`
	LifecyclePolicyBody   string `pkl:"lifecyclePolicyBody"`

	ReplicationRegions []string `pkl:"replicationRegions"`

	PullThroughCacheRules []*PullThroughCacheRule `pkl:"pullThroughCacheRules"`

	AllowedReadOnlyPrincipals  []string `pkl:"allowedReadOnlyPrincipals"`
	AllowedReadWritePrincipals []string `pkl:"allowedReadWritePrincipals"`

	RegistryPolicyBody string `pkl:"registryPolicyBody"`

	CreateVpcEndpoints bool     `pkl:"createVpcEndpoints"`
	VpcID              string   `pkl:"vpcId"`
	SubnetIDs          []string `pkl:"subnetIds"`
	SecurityGroupIDs   []string `pkl:"securityGroupIds"`
	RouteTableIDs      []string `pkl:"routeTableIds"`

	EnableSigningProfile           bool    `pkl:"enableSigningProfile"`
	ExistingSigningProfileOverride *string `pkl:"existingSigningProfileOverride"`

	CreateAuditTrail   bool   `pkl:"createAuditTrail"`
	AuditBucketName    string `pkl:"auditBucketName"`
	AuditRoleArn       string `pkl:"auditRoleArn"`
	AuditRetentionDays int    `pkl:"auditRetentionDays"`
}

// PullThroughCacheRule maps a local namespace prefix to an upstream registry.
// Rules are addressed by prefix, never by list position.
type PullThroughCacheRule struct {
	Prefix      string `pkl:"prefix"`
	UpstreamURL string `pkl:"upstreamUrl"`
}
