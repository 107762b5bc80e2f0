package models

import "time"

// StickerType is the artwork placed on the board for a day
type StickerType string

const (
	StickerStar   StickerType = "star"
	StickerHeart  StickerType = "heart"
	StickerRocket StickerType = "rocket"
	StickerCrown  StickerType = "crown"
	StickerMedal  StickerType = "medal"
)

// StickerTypes lists every sticker the child can pick from
var StickerTypes = []StickerType{StickerStar, StickerHeart, StickerRocket, StickerCrown, StickerMedal}

// Valid reports whether t is one of the known sticker types
func (t StickerType) Valid() bool {
	for _, known := range StickerTypes {
		if t == known {
			return true
		}
	}
	return false
}

// StickerDay is the board entry for one calendar day (YYYY-MM-DD)
type StickerDay struct {
	Date        string      `json:"date"`
	Count       int         `json:"count"`
	IsBonusUsed bool        `json:"isBonusUsed,omitempty"`
	StickerType StickerType `json:"stickerType,omitempty"`
}

// ArchiveEntry is an immutable snapshot of one month's board
type ArchiveEntry struct {
	MonthID       string       `json:"monthId"`
	Stickers      []StickerDay `json:"stickers"`
	TotalStickers int          `json:"totalStickers"`
	ArchivedAt    time.Time    `json:"archivedAt"`
}

// TotalStickers sums the counts of a sticker collection
func TotalStickers(stickers []StickerDay) int {
	total := 0
	for _, s := range stickers {
		total += s.Count
	}
	return total
}
