// Package clientcfg renders server entries for MCP client config files
// and merges them in without touching any other key the file holds.
// Each client kind has a fixed JSON shape and a preference-ordered list
// of candidate locations supplied by the clients package.
package clientcfg
