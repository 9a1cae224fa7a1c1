// Package naming decides where a build's output file goes.
package naming
