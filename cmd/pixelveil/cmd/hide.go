package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelveil/pixelveil/internal/raster"
	"github.com/pixelveil/pixelveil/internal/steg"
)

// hideCmd embeds a message into a cover image.
var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Embed a message into an image",
	Long: `Embed a text message into the LSBs of a cover image and write the
stego image to a lossless output file.

Examples:
  pixelveil hide --in cover.png --out hidden.png --message "meet at dawn"
  pixelveil hide --in photo.jpg --out hidden.bmp --format bmp -m "hello"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		message, _ := cmd.Flags().GetString("message")
		format, _ := cmd.Flags().GetString("format")

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read cover image: %w", err)
		}

		decoded, err := raster.Decode(data)
		if err != nil {
			return err
		}

		res, err := steg.Embed(decoded.Grid, message)
		if err != nil {
			return err
		}
		if res.Truncated {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"warning: message needs %d bits but the image holds %d; payload truncated and likely unrecoverable\n",
				8*len([]rune(message))+16, res.CapacityBits)
		}

		var encoded []byte
		switch format {
		case "png":
			encoded, err = raster.EncodePNG(res.Grid)
		case "bmp":
			encoded, err = raster.EncodeBMP(res.Grid)
		default:
			return fmt.Errorf("unsupported output format %q (png and bmp are lossless; jpeg would destroy the payload)", format)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write stego image: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %s, %d of %d bits used)\n",
			out, decoded.Info.Width, decoded.Info.Height, format, res.BitsWritten, res.CapacityBits)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hideCmd)
	hideCmd.Flags().StringP("in", "i", "", "Cover image file (png, jpeg, gif, or bmp)")
	hideCmd.Flags().StringP("out", "o", "", "Output stego image file")
	hideCmd.Flags().StringP("message", "m", "", "Message to embed (characters must fit in one byte)")
	hideCmd.Flags().String("format", "png", "Output format: png or bmp")
	_ = hideCmd.MarkFlagRequired("in")
	_ = hideCmd.MarkFlagRequired("out")
}
