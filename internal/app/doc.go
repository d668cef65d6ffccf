// Package app bootstraps serverconf.
//
// NewApplication performs the start-up sequence shared by every command:
//
//  1. Load the application configuration (internal/config)
//  2. Initialize logging
//  3. Open the configured document store
//  4. Build the configuration service with its identity, audit, provisioning
//     and tracing collaborators
//  5. Register the service and its tool adapter with the api package
//
// Commands then either call the service directly through Services, or run
// the long-lived MCP server through Application.Serve.
//
// Example:
//
//	application, err := app.NewApplication(ctx, app.NewConfig(false, ""))
//	if err != nil {
//	    return err
//	}
//	defer application.Close()
//	return application.Serve(ctx)
package app
