package cmd

import (
	"encoding/json"
	"fmt"
	"ghfetch/logging"
	"os"
)

// Global variables for JSON mode
var (
	jsonOutput bool // Flag for JSON output
	jsonLogs   bool // Flag for JSON logs
)

// GetJsonOutput returns the value of the JSON flag
func GetJsonOutput() bool {
	return jsonOutput
}

// OutputJSON handles JSON output for all commands
func OutputJSON(data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// ExitWithError reports a fatal error and exits with a non-zero status
func ExitWithError(err error) {
	if jsonOutput {
		_ = OutputJSON(map[string]string{"error": logging.Redact(err.Error())})
	} else {
		logging.LogError("❌ %v", err)
	}
	os.Exit(1)
}
