package macstage

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Snapshot a Mac's packages, preferences and dotfiles for zero.sh"
	MsgDomainsShort   = "List the preference domains that would be captured"
	MsgGenConfigShort = "Print the effective configuration as TOML"
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPath      = "Base staging directory (prompted for on a terminal when omitted)"
	MsgFlagWorkspace = "Stage into workspaces/<name> under the base directory"
	MsgFlagBootstrap = "Clone or update zero.sh next to the staged workspace"
	MsgFlagConfig    = "Configuration file (default $XDG_CONFIG_HOME/macstage/config.toml)"
	MsgFlagFormat    = "Output format: auto, term or text"
	MsgFlagWrite     = "Write the configuration file instead of printing it"

	// Prompts and notices
	MsgPromptBasePath     = "Where should files be staged?"
	MsgNoticeDefaultBase  = "No --path given and stdin is not a terminal, staging into %s"
	MsgWarnUnknownFlag    = "unknown flag %s ignored"
	MsgWarnStrayArg       = "unexpected argument %q ignored"
	MsgRunHeader          = "Staging into %s"
	MsgDomainItem         = "%-60s %s\n"
	MsgConfigWritten      = "Wrote %s\n"
	MsgErrMissingValue    = "flag --%s requires a value"
	MsgErrConfigExists    = "%s already exists, not overwriting"
	MsgErrPromptBasePath  = "failed to read base path: %w"
	MsgErrHomeDir         = "cannot determine home directory: %w"
	MsgErrGenerateConfig  = "failed to generate configuration: %w"
	MsgErrWriteConfigFile = "failed to write %s: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
