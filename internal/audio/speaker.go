package audio

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"sync"
	"time"
)

const speakTimeout = 30 * time.Second

// Player plays an audio file
type Player interface {
	Play(ctx context.Context, path string) error
}

// CommandPlayer plays files with an external program such as mpg123 or afplay
type CommandPlayer struct {
	Command string
}

func (p CommandPlayer) Play(ctx context.Context, path string) error {
	if err := exec.CommandContext(ctx, p.Command, path).Run(); err != nil {
		return fmt.Errorf("failed to play %s: %w", path, err)
	}
	return nil
}

// Speaker says phrases aloud in the background. Failures are logged and dropped.
type Speaker struct {
	tts    *TTSService
	player Player
	debug  bool
	wg     sync.WaitGroup
}

// NewSpeaker creates a speaker. A nil player disables speech.
func NewSpeaker(tts *TTSService, player Player, debug bool) *Speaker {
	return &Speaker{tts: tts, player: player, debug: debug}
}

// Enabled reports whether Speak does anything
func (s *Speaker) Enabled() bool {
	return s != nil && s.tts != nil && s.player != nil
}

// Speak starts saying text and returns immediately
func (s *Speaker) Speak(text string) {
	if !s.Enabled() {
		if s != nil && s.debug {
			log.Printf("[DEBUG] speech disabled, skipping %q", text)
		}
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
		defer cancel()

		path, err := s.tts.AudioFile(ctx, text)
		if err != nil {
			log.Printf("Error preparing speech: %v", err)
			return
		}
		if err := s.player.Play(ctx, path); err != nil {
			log.Printf("Error playing speech: %v", err)
		}
	}()
}

// Wait blocks until pending speech finishes or timeout passes
func (s *Speaker) Wait(timeout time.Duration) {
	if s == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
