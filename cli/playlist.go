package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/estribillo/chorus"
	"github.com/RyanBlaney/estribillo/playlist"
	"github.com/RyanBlaney/estribillo/transcode"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <input-dir>",
	Short: "Generate a playlist JSON with detected chorus start times",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylist,
}

func init() {
	flags := playlistCmd.Flags()
	flags.StringP("output", "o", "playlist_with_times.json", "output playlist file")
	flags.Float64("duration", 45.0, "target clip duration in seconds")
	flags.Int("workers", 1, "number of files to analyze concurrently")
	flags.String("id", "generated-playlist", "playlist id")
	flags.String("name", "Generated Playlist", "playlist display name")
	flags.String("base-url", "./audio/", "base URL prefix for audio files")

	rootCmd.AddCommand(playlistCmd)
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	flags := cmd.Flags()

	output, _ := flags.GetString("output")
	duration, _ := flags.GetFloat64("duration")
	workers, _ := flags.GetInt("workers")
	id, _ := flags.GetString("id")
	name, _ := flags.GetString("name")
	baseURL, _ := flags.GetString("base-url")

	config := chorus.PlaylistConfig()
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

	builder := playlist.NewBuilder(detector)
	builder.Workers = workers
	builder.OnFile = func(index, total int, file string) {
		fmt.Printf("[%d/%d] %s\n", index, total, file)
	}
	builder.OnResult = func(file string, song playlist.Song) {
		fmt.Printf("  start: %.0fs  confidence: %.0f%%\n",
			song.StartTime, song.Confidence*100)
	}

	list, err := builder.Build(inputDir)
	if err != nil {
		return err
	}

	list.ID = id
	list.Name = name
	list.BaseAudioURL = baseURL

	if err := list.WriteFile(output); err != nil {
		return err
	}

	fmt.Printf("\nWrote %d songs to %s\n", len(list.Songs), output)
	return nil
}
