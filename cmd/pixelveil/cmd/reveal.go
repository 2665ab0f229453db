package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelveil/pixelveil/internal/raster"
	"github.com/pixelveil/pixelveil/internal/steg"
)

// revealCmd extracts a hidden message from an image.
var revealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Extract a hidden message from an image",
	Long: `Read the LSBs of an image and print the embedded message, if one is
present. Images that never went through "hide" normally report no
message; that is an expected outcome, not a failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		decoded, err := raster.Decode(data)
		if err != nil {
			return err
		}

		ext := steg.Extract(decoded.Grid)
		if !ext.Found {
			fmt.Fprintln(cmd.OutOrStdout(), "No message found")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), ext.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)
	revealCmd.Flags().StringP("in", "i", "", "Image file to scan")
	_ = revealCmd.MarkFlagRequired("in")
}
