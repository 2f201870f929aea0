package ir

// Kind names for the fixed resource topology the composer knows about.
const (
	KindKmsKey                 = "aws:KMS.Key"
	KindKmsAlias               = "aws:KMS.Alias"
	KindRepository             = "aws:ECR.Repository"
	KindPublicRepository       = "aws:ECRPublic.Repository"
	KindLifecyclePolicy        = "aws:ECR.LifecyclePolicy"
	KindRepositoryPolicy       = "aws:ECR.RepositoryPolicy"
	KindRegistryPolicy         = "aws:ECR.RegistryPolicy"
	KindReplicationDestination = "aws:ECR.ReplicationDestination"
	KindPullThroughRule        = "aws:ECR.PullThroughCacheRule"
	KindVpcEndpoint            = "aws:EC2.VpcEndpoint"
	KindSigningProfile         = "aws:Signer.SigningProfile"
	KindLogGroup               = "aws:CloudWatch.LogGroup"
	KindTrail                  = "aws:CloudTrail.Trail"
)

// ResourceIntent is a single resource the external provisioning engine is
// asked to materialize. Intents are immutable once built: the composer hands
// them out and never touches them again.
//
// Identifier flow between intents uses ref:// handles inside Properties
// (see the stack package); DependsOn carries the explicit ordering edges.
type ResourceIntent struct {
	Kind       string         `pkl:"kind" json:"kind"`
	Name       string         `pkl:"name" json:"name"`
	DependsOn  []string       `pkl:"dependsOn" json:"dependsOn,omitempty"`
	Lifecycle  *Lifecycle     `pkl:"lifecycle" json:"lifecycle,omitempty"`
	Properties map[string]any `pkl:"properties" json:"properties"`
}

// Lifecycle carries the non-destructive contract for managed resources.
// PreventDestroy is set on every create-mode intent so that a later switch
// to reuse mode can never drive an implicit destroy.
type Lifecycle struct {
	PreventDestroy bool `pkl:"preventDestroy" json:"preventDestroy"`
}

// Address returns the stable graph address of the intent (kind.name).
func (r *ResourceIntent) Address() string {
	return r.Kind + "." + r.Name
}

// IntentSet is the composer's output: intents in a deterministic,
// dependency-respecting order, plus the output bindings a consumer reads
// after the engine has materialized everything.
type IntentSet struct {
	Intents  []*ResourceIntent `json:"intents"`
	Bindings *Bindings         `json:"bindings"`
}

// Bindings are the values the stack exposes to its callers. Values are
// either literal override identifiers or ref:// handles the engine resolves
// once the producing intent exists.
type Bindings struct {
	RepositoryURI       string         `json:"repositoryUri"`
	PublicRepositoryURI EffectiveValue `json:"publicRepositoryUri"`
	KmsKeyID            EffectiveValue `json:"kmsKeyId"`
	SigningProfileARN   EffectiveValue `json:"signingProfileArn"`
	VpcEndpointIDs      []string       `json:"vpcEndpointIds,omitempty"`
}
