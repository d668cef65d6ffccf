package document

// Default values applied when repository services are provisioned automatically.
const (
	DefaultMaxPageSize              = 50
	DefaultConformanceServerType    = "Conformance Suite Services"
	LocalRepositoryModeInMemory     = "in-memory-repository"
	LocalRepositoryModeNoRepository = "no-repository"
)

// ServerConfig is the configuration document of one logical server instance.
type ServerConfig struct {
	ServerName  string   `yaml:"serverName" json:"serverName"`
	ServerType  string   `yaml:"serverType,omitempty" json:"serverType,omitempty"`
	MaxPageSize int      `yaml:"maxPageSize,omitempty" json:"maxPageSize,omitempty"`
	AuditTrail  []string `yaml:"auditTrail,omitempty" json:"auditTrail,omitempty"`

	RepositoryServices *RepositoryServicesConfig `yaml:"repositoryServices,omitempty" json:"repositoryServices,omitempty"`
	ConformanceSuite   *ConformanceSuiteConfig   `yaml:"conformanceSuite,omitempty" json:"conformanceSuite,omitempty"`
	GovernanceEngines  []EngineConfig            `yaml:"governanceEngines,omitempty" json:"governanceEngines,omitempty"`
	SecurityConnection *Connection               `yaml:"securityConnection,omitempty" json:"securityConnection,omitempty"`
	AccessServices     []AccessServiceConfig     `yaml:"accessServices,omitempty" json:"accessServices,omitempty"`
	ViewServices       []ViewServiceConfig       `yaml:"viewServices,omitempty" json:"viewServices,omitempty"`

	// Revision is the store's concurrency token for the loaded copy. It is
	// empty for a document that has never been saved.
	Revision string `yaml:"-" json:"-"`
}

// New returns an empty document for the named server.
func New(serverName string) *ServerConfig {
	return &ServerConfig{ServerName: serverName}
}

// RepositoryServicesConfig describes the repository services of a server.
type RepositoryServicesConfig struct {
	LocalRepository  *LocalRepositoryConfig  `yaml:"localRepository,omitempty" json:"localRepository,omitempty"`
	EnterpriseAccess *EnterpriseAccessConfig `yaml:"enterpriseAccess,omitempty" json:"enterpriseAccess,omitempty"`
}

// LocalRepositoryConfig describes the server's local metadata repository.
type LocalRepositoryConfig struct {
	MetadataCollectionID   string `yaml:"metadataCollectionId" json:"metadataCollectionId"`
	MetadataCollectionName string `yaml:"metadataCollectionName,omitempty" json:"metadataCollectionName,omitempty"`
	Mode                   string `yaml:"mode" json:"mode"`
}

// EnterpriseAccessConfig describes federated (enterprise) repository access.
type EnterpriseAccessConfig struct {
	EnterpriseMetadataCollectionID   string `yaml:"enterpriseMetadataCollectionId" json:"enterpriseMetadataCollectionId"`
	EnterpriseMetadataCollectionName string `yaml:"enterpriseMetadataCollectionName,omitempty" json:"enterpriseMetadataCollectionName,omitempty"`
}

// ConformanceSuiteConfig holds the workbenches recorded for a conformance suite server.
// Each workbench is independent of the others.
type ConformanceSuiteConfig struct {
	RepositoryWorkbench   *RepositoryConformanceWorkbenchConfig `yaml:"repositoryWorkbench,omitempty" json:"repositoryWorkbench,omitempty"`
	PlatformWorkbench     *PlatformConformanceWorkbenchConfig   `yaml:"platformWorkbench,omitempty" json:"platformWorkbench,omitempty"`
	RepositoryPerformance *RepositoryPerformanceWorkbenchConfig `yaml:"repositoryPerformance,omitempty" json:"repositoryPerformance,omitempty"`
}

// IsEmpty reports whether no workbench is recorded.
func (c *ConformanceSuiteConfig) IsEmpty() bool {
	return c == nil || (c.RepositoryWorkbench == nil && c.PlatformWorkbench == nil && c.RepositoryPerformance == nil)
}

// RepositoryConformanceWorkbenchConfig targets a repository under test.
type RepositoryConformanceWorkbenchConfig struct {
	TutRepositoryServerName string `yaml:"tutRepositoryServerName" json:"tutRepositoryServerName"`
	MaxSearchResults        int    `yaml:"maxSearchResults,omitempty" json:"maxSearchResults,omitempty"`
}

// PlatformConformanceWorkbenchConfig targets a platform under test.
type PlatformConformanceWorkbenchConfig struct {
	TutPlatformRootURL string `yaml:"tutPlatformRootURL" json:"tutPlatformRootURL"`
}

// RepositoryPerformanceWorkbenchConfig describes a repository performance run.
type RepositoryPerformanceWorkbenchConfig struct {
	TutRepositoryServerName string   `yaml:"tutRepositoryServerName" json:"tutRepositoryServerName"`
	InstancesPerType        int      `yaml:"instancesPerType,omitempty" json:"instancesPerType,omitempty"`
	MaxSearchResults        int      `yaml:"maxSearchResults,omitempty" json:"maxSearchResults,omitempty"`
	WaitBetweenScenarios    int      `yaml:"waitBetweenScenarios,omitempty" json:"waitBetweenScenarios,omitempty"`
	ProfilesToSkip          []string `yaml:"profilesToSkip,omitempty" json:"profilesToSkip,omitempty"`
	MethodsToSkip           []string `yaml:"methodsToSkip,omitempty" json:"methodsToSkip,omitempty"`
}

// EngineConfig describes one governance engine hosted by the server.
// EngineQualifiedName is the unique key within the governance engines section.
type EngineConfig struct {
	EngineID                  string `yaml:"engineId,omitempty" json:"engineId,omitempty"`
	EngineQualifiedName       string `yaml:"engineQualifiedName" json:"engineQualifiedName"`
	EngineUserID              string `yaml:"engineUserId,omitempty" json:"engineUserId,omitempty"`
	OMAGServerPlatformRootURL string `yaml:"omagServerPlatformRootURL,omitempty" json:"omagServerPlatformRootURL,omitempty"`
	OMAGServerName            string `yaml:"omagServerName,omitempty" json:"omagServerName,omitempty"`
}

// Connection describes how to reach a connector, such as the server security connector.
type Connection struct {
	QualifiedName           string            `yaml:"qualifiedName,omitempty" json:"qualifiedName,omitempty"`
	DisplayName             string            `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	ConnectorType           *ConnectorType    `yaml:"connectorType,omitempty" json:"connectorType,omitempty"`
	Endpoint                *Endpoint         `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	ConfigurationProperties map[string]string `yaml:"configurationProperties,omitempty" json:"configurationProperties,omitempty"`
}

// ConnectorType names the provider that creates the connector.
type ConnectorType struct {
	ConnectorProviderClassName string `yaml:"connectorProviderClassName" json:"connectorProviderClassName"`
}

// Endpoint is the network address of a connector.
type Endpoint struct {
	Address string `yaml:"address" json:"address"`
}

// AccessServiceConfig enables one access service. AccessServiceName is the key.
type AccessServiceConfig struct {
	AccessServiceName    string            `yaml:"accessServiceName" json:"accessServiceName"`
	AccessServiceOptions map[string]string `yaml:"accessServiceOptions,omitempty" json:"accessServiceOptions,omitempty"`
}

// ViewServiceConfig enables one view service. ViewServiceName is the key.
type ViewServiceConfig struct {
	ViewServiceName           string            `yaml:"viewServiceName" json:"viewServiceName"`
	OMAGServerName            string            `yaml:"omagServerName,omitempty" json:"omagServerName,omitempty"`
	OMAGServerPlatformRootURL string            `yaml:"omagServerPlatformRootURL,omitempty" json:"omagServerPlatformRootURL,omitempty"`
	ViewServiceOptions        map[string]string `yaml:"viewServiceOptions,omitempty" json:"viewServiceOptions,omitempty"`
}
