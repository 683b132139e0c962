package cmd

import (
	"fmt"
	"ghfetch/logging"
	"ghfetch/release"

	"github.com/spf13/cobra"
)

// Structures for JSON output
type AssetsOutput struct {
	Tag    string          `json:"tag,omitempty"`
	Assets []release.Asset `json:"assets,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// assetsCmd represents the assets command
var assetsCmd = &cobra.Command{
	Use:   "assets [url | owner repo tag]",
	Short: "List the assets attached to a release",
	Long: `List the assets attached to a GitHub release, with their asset ids and sizes.
Useful for diagnosing filename mismatches when a fetch reports a missing asset.

Examples:
  ghfetch assets https://github.com/acme/tool/releases/download/v1.2.0/tool-linux.tar.gz
  ghfetch assets acme tool v1.2.0`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("\n❌ Invalid number of arguments\n\n" +
				"Usage:\n" +
				"  ghfetch assets [url]\n" +
				"  ghfetch assets [owner] [repo] [tag]")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var owner, repo, tag string

		if len(args) == 1 {
			target, err := release.Parse(args[0])
			if err != nil {
				return err
			}
			owner, repo, tag = target.Owner, target.Repo, target.Tag
		} else {
			owner, repo, tag = args[0], args[1], args[2]
		}

		return handleAssets(owner, repo, tag)
	},
}

func handleAssets(owner, repo, tag string) error {
	tokens := release.NewTokenProvider(cfg.General.TokenEnv)
	token, err := tokens.Resolve()
	if err != nil {
		return err
	}

	client := release.NewClient(cfg.General.APIURL, token)
	rel, err := client.GetReleaseByTag(owner, repo, tag)
	if err != nil {
		return err
	}

	if GetJsonOutput() {
		return OutputJSON(AssetsOutput{Tag: tag, Assets: rel.Assets})
	}

	if len(rel.Assets) == 0 {
		logging.LogOutput("❌ Release %s has no assets", tag)
		return nil
	}

	logging.LogOutput("🔹 Assets for %s/%s@%s:", owner, repo, tag)
	logging.LogOutput("─────────────────────────")
	for _, asset := range rel.Assets {
		logging.LogOutput("  ✅ %s (id=%d, %d bytes)", asset.Name, asset.ID, asset.Size)
	}
	logging.LogOutput("")
	logging.LogOutput("💡 To download an asset:")
	logging.LogOutput("   ghfetch get https://github.com/%s/%s/releases/download/%s/<filename>", owner, repo, tag)

	return nil
}
