// Package commands defines the cobra command tree for the polkaguard binary.
package commands
