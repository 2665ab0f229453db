package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pixelveil",
	Short: "pixelveil - hide and recover messages in images",
	Long: `pixelveil embeds text messages in the least-significant bits of an
image's pixel channels and recovers them later. Output images are
lossless (PNG or BMP); re-encoding a stego image as JPEG destroys the
hidden message.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
