package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"

	insightService "PokerVision/internal/api/insight/service"
	"PokerVision/internal/api/stream"
	streamService "PokerVision/internal/api/stream/service"
	"PokerVision/internal/entity"
	"PokerVision/pkg/emostream"
	"PokerVision/pkg/framegrab"
	"PokerVision/pkg/log"
	"PokerVision/pkg/utils"
)

var streamCmd = &cobra.Command{
	Use:   "stream <frame_dir>",
	Short: "Replay a directory of still frames through the emotion reader",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runStream(args[0])
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
}

func runStream(frameDir string) error {
	_ = godotenv.Load()
	logger := log.NewLogger()

	cfg, err := emostream.FromEnv()
	if err != nil {
		return err
	}

	source, err := framegrab.NewDirSource(frameDir)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(source.Len(),
		progressbar.OptionSetDescription("Reading faces"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	insightServices := insightService.NewInsightService(insightService.DefaultReadConfig())
	sessionServices := streamService.NewSessionService(
		logger,
		emostream.NewDialer(logger),
		cfg,
		nopSessionStore{},
		insightServices,
		utils.New(),
		streamService.DefaultOptions(),
	)

	sess, err := sessionServices.NewSession(
		&progressSource{inner: source, bar: bar},
		&consoleSink{},
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Connect(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Fprintln(os.Stderr, "\nInterrupted.")
	case <-sess.Done():
	}

	if sess.State() == entity.SessionStateFailed {
		return fmt.Errorf("session failed: %s", sess.Status())
	}

	return nil
}

// progressSource advances the progress bar as frames leave the directory.
type progressSource struct {
	inner *framegrab.DirSource
	bar   *progressbar.ProgressBar
}

func (s *progressSource) Grab(ctx context.Context) ([]byte, error) {
	frame, err := s.inner.Grab(ctx)
	if err == nil {
		_ = s.bar.Add(1)
	}
	return frame, err
}

func (s *progressSource) Close() error {
	_ = s.bar.Finish()
	return s.inner.Close()
}

// consoleSink prints reads to stdout and state changes to stderr.
type consoleSink struct{}

func (consoleSink) PushUpdate(msg stream.UpdateMessage) error {
	if len(msg.Top) == 0 {
		return nil
	}

	parts := make([]string, 0, len(msg.Top))
	for _, emotion := range msg.Top {
		parts = append(parts, fmt.Sprintf("%s %.2f", emotion.Name, emotion.Score))
	}

	fmt.Printf("%s | %s\n", strings.Join(parts, ", "), msg.Read.Label)
	return nil
}

func (consoleSink) PushStatus(msg stream.StatusMessage) error {
	if msg.Message != "" {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", msg.State, msg.Message)
	} else {
		fmt.Fprintf(os.Stderr, "[%s]\n", msg.State)
	}
	return nil
}

// nopSessionStore keeps the CLI free of a Redis dependency.
type nopSessionStore struct{}

func (nopSessionStore) SaveSnapshot(_ context.Context, _ entity.SessionSnapshot) error {
	return nil
}

func (nopSessionStore) GetSnapshot(_ context.Context, _ string) (*entity.SessionSnapshot, error) {
	return nil, nil
}

func (nopSessionStore) DeleteSnapshot(_ context.Context, _ string) error {
	return nil
}
