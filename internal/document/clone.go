package document

// Clone returns a deep copy of the document. A nil receiver yields nil.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.AuditTrail = cloneStrings(c.AuditTrail)
	out.RepositoryServices = c.RepositoryServices.Clone()
	out.ConformanceSuite = c.ConformanceSuite.Clone()
	out.GovernanceEngines = cloneSlice(c.GovernanceEngines)
	out.SecurityConnection = c.SecurityConnection.Clone()

	if c.AccessServices != nil {
		out.AccessServices = make([]AccessServiceConfig, len(c.AccessServices))
		for i, svc := range c.AccessServices {
			svc.AccessServiceOptions = cloneMap(svc.AccessServiceOptions)
			out.AccessServices[i] = svc
		}
	}
	if c.ViewServices != nil {
		out.ViewServices = make([]ViewServiceConfig, len(c.ViewServices))
		for i, svc := range c.ViewServices {
			svc.ViewServiceOptions = cloneMap(svc.ViewServiceOptions)
			out.ViewServices[i] = svc
		}
	}
	return &out
}

// Clone returns a deep copy of the repository services section.
func (r *RepositoryServicesConfig) Clone() *RepositoryServicesConfig {
	if r == nil {
		return nil
	}
	out := &RepositoryServicesConfig{}
	if r.LocalRepository != nil {
		local := *r.LocalRepository
		out.LocalRepository = &local
	}
	if r.EnterpriseAccess != nil {
		enterprise := *r.EnterpriseAccess
		out.EnterpriseAccess = &enterprise
	}
	return out
}

// Clone returns a deep copy of the conformance suite section.
func (c *ConformanceSuiteConfig) Clone() *ConformanceSuiteConfig {
	if c == nil {
		return nil
	}
	out := &ConformanceSuiteConfig{}
	if c.RepositoryWorkbench != nil {
		wb := *c.RepositoryWorkbench
		out.RepositoryWorkbench = &wb
	}
	if c.PlatformWorkbench != nil {
		wb := *c.PlatformWorkbench
		out.PlatformWorkbench = &wb
	}
	out.RepositoryPerformance = c.RepositoryPerformance.Clone()
	return out
}

// Clone returns a deep copy of the performance workbench.
func (p *RepositoryPerformanceWorkbenchConfig) Clone() *RepositoryPerformanceWorkbenchConfig {
	if p == nil {
		return nil
	}
	out := *p
	out.ProfilesToSkip = cloneStrings(p.ProfilesToSkip)
	out.MethodsToSkip = cloneStrings(p.MethodsToSkip)
	return &out
}

// Clone returns a deep copy of the connection.
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	out := *c
	if c.ConnectorType != nil {
		ct := *c.ConnectorType
		out.ConnectorType = &ct
	}
	if c.Endpoint != nil {
		ep := *c.Endpoint
		out.Endpoint = &ep
	}
	out.ConfigurationProperties = cloneMap(c.ConfigurationProperties)
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	return cloneSlice(in)
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
