package commands

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "An in-process publish/subscribe event registry"
	MsgRootLong = `relay is a small library for decoupling event producers from
consumers without either side holding a reference to the other. This CLI
demonstrates and benchmarks it: run a scripted pub/sub session, measure
registry throughput, or print the default configuration.`

	MsgDemoShort      = "Run a scripted publish/subscribe session"
	MsgDemoLong       = "Demo wires a few subscribers to a broker and publishes a scripted sequence, printing every delivery."
	MsgBenchShort     = "Measure registry throughput under concurrent registration"
	MsgBenchLong      = "Bench registers handlers from several goroutines, publishes once, and reports delivery counts and timings."
	MsgGenConfigShort = "Print the relay configuration"
	MsgGenConfigLong  = "Gen-config prints the built-in default configuration, or with --effective the merged result of defaults, config file, and environment."
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFailFast  = "Abort remaining deliveries on the first handler fault"
	MsgFlagEffective = "Print the effective configuration after all layers"
	MsgFlagWrite     = "Write the configuration to the config file instead of stdout"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
)

// MsgUsageTemplate is the cobra usage template with bold section
// headers (plain text when stdout is not a terminal).
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
