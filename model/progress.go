package model

import (
	"encoding/json"
	"time"
)

// PlayerProgress is the per-user progression record. Every mutation goes
// through a row-locked transaction so concurrent requests on the same user
// serialize at the store.
type PlayerProgress struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"uniqueIndex;not null"`

	XP     int    `gorm:"default:0"`
	Rank   string `gorm:"default:bronze"`
	Streak int    `gorm:"default:1"`

	Coins int `gorm:"default:0"`
	Gems  int `gorm:"default:0"`

	OwnedItems json.RawMessage `gorm:"type:jsonb;default:'[]'"`

	ReferralCode  string  `gorm:"uniqueIndex;not null"`
	ReferredBy    *string // user id of the referrer, write-once
	ReferralCount int     `gorm:"default:0"`

	LastActivityAt      *time.Time
	LastChallengeDate   *time.Time
	ChallengesCompleted int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedItemIDs decodes the jsonb item set.
func (p *PlayerProgress) OwnedItemIDs() []string {
	var items []string
	if len(p.OwnedItems) > 0 {
		_ = json.Unmarshal(p.OwnedItems, &items)
	}
	return items
}

func (p *PlayerProgress) OwnsItem(itemID string) bool {
	for _, id := range p.OwnedItemIDs() {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddOwnedItem appends itemID to the set, ignoring duplicates.
func (p *PlayerProgress) AddOwnedItem(itemID string) error {
	if p.OwnsItem(itemID) {
		return nil
	}
	items := append(p.OwnedItemIDs(), itemID)
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	p.OwnedItems = data
	return nil
}
