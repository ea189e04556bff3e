package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/estribillo/chorus"
	"github.com/RyanBlaney/estribillo/transcode"
	"github.com/RyanBlaney/estribillo/trim"
)

const reportName = "trim_report.txt"

var trimCmd = &cobra.Command{
	Use:   "trim <input-dir> <output-dir>",
	Short: "Extract faded MP3 clips around detected chorus starts",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrim,
}

func init() {
	flags := trimCmd.Flags()
	flags.Float64("duration", 45.0, "clip duration in seconds")
	flags.Float64("fade", 2.0, "fade in/out duration in seconds")
	flags.String("bitrate", "192k", "output MP3 bitrate")
	flags.Int("workers", 1, "number of files to process concurrently")

	rootCmd.AddCommand(trimCmd)
}

func runTrim(cmd *cobra.Command, args []string) error {
	inputDir, outputDir := args[0], args[1]
	flags := cmd.Flags()

	duration, _ := flags.GetFloat64("duration")
	fade, _ := flags.GetFloat64("fade")
	bitrate, _ := flags.GetString("bitrate")
	workers, _ := flags.GetInt("workers")

	config := chorus.ClipConfig()
	config.ClipDuration = duration

	decoderConfig := transcode.DefaultDecoderConfig()
	decoderConfig.TargetSampleRate = config.SampleRate
	decoderConfig.FFmpegPath = viper.GetString("ffmpeg")
	decoderConfig.FFprobePath = viper.GetString("ffprobe")
	decoder := transcode.NewDecoder(decoderConfig)

	detector, err := chorus.NewDetector(config, decoder)
	if err != nil {
		return err
	}

	encoderConfig := transcode.DefaultEncoderConfig()
	encoderConfig.FFmpegPath = viper.GetString("ffmpeg")
	encoderConfig.Bitrate = bitrate

	trimmer := trim.NewTrimmer(detector, transcode.NewEncoder(encoderConfig), decoder)
	trimmer.ClipDuration = duration
	trimmer.FadeDuration = fade
	trimmer.Workers = workers
	trimmer.OnFile = func(index, total int, file string) {
		fmt.Printf("[%d/%d] %s\n", index, total, file)
	}
	trimmer.OnResult = func(file string, detail trim.Detail) {
		if detail.Status == trim.StatusSuccess {
			fmt.Printf("  start: %.1fs  confidence: %.0f%%\n",
				detail.Start, detail.Confidence*100)
		} else {
			fmt.Printf("  FAILED\n")
		}
	}
	trimmer.OnSkip = func(file string) {
		fmt.Printf("  skipped, clip exists\n")
	}

	report, err := trimmer.Run(inputDir, outputDir)
	if err != nil {
		return err
	}

	reportPath := filepath.Join(outputDir, reportName)
	if err := report.WriteFile(reportPath); err != nil {
		return err
	}

	fmt.Printf("\nProcessed: %d  Failed: %d  Skipped: %d\n",
		report.Processed, report.Failed, report.Skipped)
	fmt.Printf("Clips total %s, report written to %s\n",
		humanize.Bytes(clipBytes(report)), reportPath)
	return nil
}

// clipBytes sums the on-disk size of the clips written during this run
func clipBytes(report *trim.Report) uint64 {
	var total uint64
	for _, detail := range report.Details {
		if detail.Status != trim.StatusSuccess {
			continue
		}
		if info, err := os.Stat(detail.Output); err == nil {
			total += uint64(info.Size())
		}
	}
	return total
}
