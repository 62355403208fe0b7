package constants

// Logo is printed by --logo and at the top of the progress view.
const Logo = `
  ___ ___  _ __ ___  _ __ ___ (_) |_ __ _  ___ _ __
 / __/ _ \| '_ ` + "`" + ` _ \| '_ ` + "`" + ` _ \| | __/ _` + "`" + ` |/ _ \ '_ \
| (_| (_) | | | | | | | | | | | | || (_| |  __/ | | |
 \___\___/|_| |_| |_|_| |_| |_|_|\__\__, |\___|_| |_|
                                    |___/`

// Tagline follows the logo.
const Tagline = "commitgen: a steady stream of commits, on demand"

// AppName is used in user agents, lock files and log files.
const AppName = "commitgen"
