package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	bidFile        string
	bidText        string
	photoPath      string
	photoMediaType string
	photoNote      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Submit a bid or photo for assessment",
}

var analyzeBidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Analyze a text-based construction bid",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := bidText
		if bidFile != "" {
			data, err := os.ReadFile(bidFile)
			if err != nil {
				return eris.Wrapf(err, "read bid file %s", bidFile)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return eris.New("provide bid text via --text or --file")
		}

		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Analyzer.AnalyzeBid(cmd.Context(), text)
		if err != nil {
			return err
		}
		return printJSON(rep)
	},
}

var analyzePhotoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Analyze a photo of work or damage",
	RunE: func(cmd *cobra.Command, args []string) error {
		if photoPath == "" {
			return eris.New("provide an image via --image")
		}
		data, err := os.ReadFile(photoPath)
		if err != nil {
			return eris.Wrapf(err, "read image %s", photoPath)
		}

		mediaType := photoMediaType
		if mediaType == "" {
			mediaType = guessMediaType(photoPath)
		}

		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		rep, err := env.Analyzer.AnalyzePhoto(cmd.Context(),
			base64.StdEncoding.EncodeToString(data), mediaType, photoNote)
		if err != nil {
			return err
		}
		return printJSON(rep)
	},
}

func guessMediaType(path string) string {
	switch {
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}

func init() {
	analyzeBidCmd.Flags().StringVar(&bidFile, "file", "", "path to a text file containing the bid")
	analyzeBidCmd.Flags().StringVar(&bidText, "text", "", "bid text inline")
	analyzePhotoCmd.Flags().StringVar(&photoPath, "image", "", "path to the photo (jpeg/png/webp)")
	analyzePhotoCmd.Flags().StringVar(&photoMediaType, "media-type", "", "override the detected image media type")
	analyzePhotoCmd.Flags().StringVar(&photoNote, "note", "", "optional context for the reviewer")

	analyzeCmd.AddCommand(analyzeBidCmd, analyzePhotoCmd)
	rootCmd.AddCommand(analyzeCmd)
}
