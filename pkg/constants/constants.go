package constants

// CLIName is the name of the command line tool.
const CLIName = "netplan"

// DefaultConfigDir is where network definitions are read from when no path
// is given on the command line.
const DefaultConfigDir = "/etc/netplan"

// YAMLExtension is the file extension of network definition files.
const YAMLExtension = ".yaml"
