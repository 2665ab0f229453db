package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelveil/pixelveil/internal/analysis"
	"github.com/pixelveil/pixelveil/internal/raster"
)

// inspectCmd runs steganalysis heuristics on an image.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report LSB statistics for an image",
	Long: `Analyze an image's least-significant bit planes and report the
ones-ratio and chi-square statistics per channel, plus a coarse verdict
on whether the image looks like it carries an embedded payload.

With --plane-out, the amplified LSB plane is also written as a PNG for
visual review. With --compare, the image is measured against the given
cover and the report gains a perceptual distortion block.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		planeOut, _ := cmd.Flags().GetString("plane-out")
		compare, _ := cmd.Flags().GetString("compare")

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		decoded, err := raster.Decode(data)
		if err != nil {
			return err
		}

		result, err := analysis.Inspect(decoded.Image)
		if err != nil {
			return err
		}

		report := struct {
			*analysis.InspectResult
			Distortion *analysis.DistortionResult `json:"distortion,omitempty"`
		}{InspectResult: result}

		if compare != "" {
			coverData, err := os.ReadFile(compare)
			if err != nil {
				return fmt.Errorf("failed to read cover image: %w", err)
			}
			cover, err := raster.Decode(coverData)
			if err != nil {
				return err
			}
			report.Distortion, err = analysis.Distortion(cover.Image, decoded.Image)
			if err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		if planeOut != "" {
			plane, err := analysis.LSBPlane(decoded.Image)
			if err != nil {
				return err
			}
			raw, err := base64.StdEncoding.DecodeString(plane.ImageBase64)
			if err != nil {
				return fmt.Errorf("failed to decode plane image: %w", err)
			}
			if err := os.WriteFile(planeOut, raw, 0o644); err != nil {
				return fmt.Errorf("failed to write plane image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote LSB plane to %s\n", planeOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("in", "i", "", "Image file to analyze")
	inspectCmd.Flags().String("plane-out", "", "Optional path for the amplified LSB plane PNG")
	inspectCmd.Flags().String("compare", "", "Cover image to measure distortion against")
	_ = inspectCmd.MarkFlagRequired("in")
}
