// Package mcp exposes the statement engine over the Model Context Protocol.
package mcp
