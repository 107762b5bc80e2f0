package audio

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ttsRequestTimeout = 10 * time.Second
	googleTTSURL      = "https://translate.google.com/translate_tts"
)

// TTSService turns phrases into MP3 files cached under audioDir
type TTSService struct {
	audioDir string
	lang     string
	baseURL  string
	client   *http.Client
}

// NewTTSService creates a new TTS service
func NewTTSService(audioDir, lang string) *TTSService {
	if lang == "" {
		lang = "en"
	}
	return &TTSService{
		audioDir: audioDir,
		lang:     lang,
		baseURL:  googleTTSURL,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// AudioFile returns the path of the MP3 for text, generating it on first use
func (s *TTSService) AudioFile(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to say")
	}

	path := filepath.Join(s.audioDir, s.filename(text))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	if err := s.generateUsingGoogleTTS(ctx, text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return path, nil
}

// filename is stable per phrase and language so repeated phrases hit the cache
func (s *TTSService) filename(text string) string {
	sum := sha1.Sum([]byte(s.lang + "\x00" + strings.ToLower(text)))
	return fmt.Sprintf("phrase_%s.mp3", hex.EncodeToString(sum[:8]))
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech endpoint
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed download never leaves a cached partial
	tmp, err := os.CreateTemp(s.audioDir, "tts-*.part")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}
