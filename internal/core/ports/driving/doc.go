// Package driving declares the services the front ends (cli, tui, web, mcp)
// call. internal/core/services implements them.
package driving
