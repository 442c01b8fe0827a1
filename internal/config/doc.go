// Package config loads enumarg configuration files.
//
// A configuration file is YAML (enumarg.yaml, enumarg.yml) or TOML
// (enumarg.toml). The format follows the file extension:
//
//	version: "1"
//	package: ./wire/...
//	output: ""            # default: next to each package
//	file: wire_enumarg.go # default: <pkg>_enumarg.go
//	manifest: .enumarg/capabilities.msgpack
//	enums:
//	  - type: EnumArg
//	    width: u8
//
// Entries under enums take precedence over //enumarg:width directives and
// are themselves overridden by command-line flags.
package config
