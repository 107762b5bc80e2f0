package summary

import (
	"fmt"
	"strings"
)

var missionPhrases = []string{
	"Great job finishing %s!",
	"You did it! %s is done.",
	"Way to go! %s complete.",
	"Awesome work on %s!",
}

// MissionPraise is spoken when a mission is completed. seed picks the phrase.
func MissionPraise(title string, seed int) string {
	if seed < 0 {
		seed = -seed
	}
	return fmt.Sprintf(missionPhrases[seed%len(missionPhrases)], strings.TrimSpace(title))
}

// StickerPraise is spoken when today's sticker is placed
func StickerPraise(childName string, total int) string {
	name := strings.TrimSpace(childName)
	if name == "" {
		name = "Superstar"
	}
	if total == 1 {
		return fmt.Sprintf("%s, you earned your first sticker this month!", name)
	}
	return fmt.Sprintf("%s, that's %d stickers this month!", name, total)
}
