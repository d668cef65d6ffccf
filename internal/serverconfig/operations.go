package serverconfig

// Operation names, as reported in errors, trace events and tool names.
const (
	OpEnableRepositoryConformanceWorkbench  = "enableRepositoryConformanceWorkbench"
	OpEnablePlatformConformanceWorkbench    = "enablePlatformConformanceWorkbench"
	OpEnableRepositoryPerformanceWorkbench  = "enableRepositoryPerformanceWorkbench"
	OpDisableRepositoryConformanceWorkbench = "disableRepositoryConformanceWorkbench"
	OpDisablePlatformConformanceWorkbench   = "disablePlatformConformanceWorkbench"
	OpDisableAllConformanceWorkbenches      = "disableAllConformanceWorkbenches"
	OpAddEngine                             = "addEngine"
	OpGetEngineConfiguration                = "getEngineConfiguration"
	OpSetEngineConfiguration                = "setEngineConfiguration"
	OpClearEngineConfiguration              = "clearEngineConfiguration"
	OpSetServerSecurityConnection           = "setServerSecurityConnection"
	OpGetServerSecurityConnection           = "getServerSecurityConnection"
	OpClearServerSecurityConnection         = "clearServerSecurityConnection"
	OpConfigureAccessService                = "configureAccessService"
	OpRemoveAccessService                   = "removeAccessService"
	OpGetAccessServices                     = "getAccessServices"
	OpClearAccessServices                   = "clearAccessServices"
	OpConfigureViewService                  = "configureViewService"
	OpRemoveViewService                     = "removeViewService"
	OpGetViewServices                       = "getViewServices"
	OpClearViewServices                     = "clearViewServices"
	OpSetServerType                         = "setServerType"
	OpGetServerConfig                       = "getServerConfig"
	OpListServers                           = "listServers"
)
