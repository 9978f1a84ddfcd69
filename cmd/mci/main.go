// mci validates MCI tool-definition schemas and serves their tool sets.
//
// Usage:
//
//	# Validate the schema in the current directory
//	mci validate
//
//	# Validate with extra environment variables
//	mci validate --file custom.mci.json --env API_KEY=123
//
//	# List available tools
//	mci list --filter tags:api,database
//
//	# Create a starter schema
//	mci install
//
//	# Serve the tool set over HTTP, reloading on change
//	mci serve --watch
//
//	# Show version information
//	mci version
package main

func main() {
	Execute()
}
