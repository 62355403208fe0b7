// Package config provides configuration handling for commitgen.
//
// # Configuration Sources
//
// Values are applied in this order, later sources winning:
//
// 1. Default values
// 2. A YAML profile (--config, COMMITGEN_CONFIG, or .commitgen.yaml in the target)
// 3. Environment variables
// 4. Command-line flags
// 5. The positional repository argument
//
// # Environment Variables
//
//	COMMITGEN_REPO      Path to the target directory (default: current directory)
//	COMMITGEN_COUNT     Number of commits to create (default: 100)
//	COMMITGEN_REMOTE    Remote URL to push to
//	COMMITGEN_USERNAME  Username for an authenticated push
//	COMMITGEN_TOKEN     Access token for an authenticated push
//	COMMITGEN_VERBOSE   Whether to show informational messages (default: true)
//	COMMITGEN_DEBUG     Enable debug logging (default: false)
//	COMMITGEN_LOG_FILE  Path to log file (default: ~/.local/share/commitgen/logs/commitgen-<hash>.log)
//	COMMITGEN_TUI       Show the interactive progress view (default: false)
//	COMMITGEN_CONFIG    Path to a YAML profile
//
// # Profiles
//
// A profile may set repo, count, remote, username, verbose, debug, log_file
// and tui. A token key is rejected so that access tokens never live on disk.
//
//	count: 250
//	remote: https://github.com/octo/playground.git
//	username: octo
//
// The Config type is not safe for concurrent modification. It is built once
// at startup and read afterwards.
package config
