package main

// Default limits for CLI commands.
const (
	DefaultHistoryLimit = 20
	DefaultSearchLimit  = 50
)

// shellPrompt is printed before every interactive command.
const shellPrompt = "lineage> "
