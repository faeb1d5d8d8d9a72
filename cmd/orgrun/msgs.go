package orgrun

// Command descriptions
const (
	MsgRootShort = "Run the organize file engine and collect its results"
	MsgRootLong  = `orgrun drives the external organize engine: it finds the engine or its
wrapper script, hands it a rule document, streams its output as classified
events and keeps a history of every run and the files it touched.`

	MsgRunShort      = "Organize files for real"
	MsgSimulateShort = "Show what organize would do without touching files"
	MsgRunExample    = `  orgrun simulate --rules ~/rules.yaml
  orgrun run --config ~/.config/organize/config.yaml
  orgrun run --format json | jq 'select(.type == "event")'`

	MsgLocateShort   = "Show which engine command and wrapper script would be used"
	MsgValidateShort = "Check that a rule document can be handed to the engine"
	MsgHistoryShort  = "Inspect previous runs"
	MsgHistoryList   = "List recent runs, newest first"
	MsgHistoryShow   = "Show one run and every result it produced"
	MsgConfigShort   = "Print the effective orgrun configuration"
	MsgVersionShort  = "Print version information"
	MsgCompletion    = "Generate shell completion script"
	MsgManShort      = "Generate man pages into a directory"
)

// Flag descriptions
const (
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat        = "Output format: auto, term, text or json"
	MsgFlagConfig        = "Existing organize config file to pass to the engine"
	MsgFlagRules         = "YAML rule document to validate and hand to the engine"
	MsgFlagVerboseEngine = "Ask the engine for verbose output (direct mode only)"
	MsgFlagLimit         = "Maximum number of runs to list (0 for all)"
)

// Output messages
const (
	MsgLocateCommand   = "command: %s"
	MsgLocateScript    = "script:  %s (%s)"
	MsgLocateMode      = "mode:    %s"
	MsgDocumentValid   = "%s is valid: %d %s"
	MsgHistoryDisabled = "Run history is disabled (history.enabled = false)."
	MsgConfigSource    = "# merged from %s\n"
)
