// Package progression persists lifetime player statistics across matches.
package progression

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

// MatchResult summarizes one finished match for the record.
type MatchResult struct {
	Won         bool `json:"won"`
	RoundsWon   int  `json:"roundsWon"`
	RoundsLost  int  `json:"roundsLost"`
	DamageDealt int  `json:"damageDealt"`
	DamageTaken int  `json:"damageTaken"`
	Catches     int  `json:"catches"`
	Throws      int  `json:"throws"`
}

// Profile is the lifetime record stored on disk.
type Profile struct {
	MatchesPlayed int `json:"matchesPlayed"`
	MatchesWon    int `json:"matchesWon"`
	RoundsWon     int `json:"roundsWon"`
	RoundsLost    int `json:"roundsLost"`
	DamageDealt   int `json:"damageDealt"`
	DamageTaken   int `json:"damageTaken"`
	Catches       int `json:"catches"`
	Throws        int `json:"throws"`
}

// Recorder accepts finished-match results.
type Recorder interface {
	RecordMatch(result MatchResult) error
}

// NopRecorder discards results. Used when persistence is unwanted (relay,
// tests).
type NopRecorder struct{}

func (NopRecorder) RecordMatch(MatchResult) error { return nil }

const profileItem = "profile"

// GdataRecorder stores the profile as JSON through gdata's per-OS data dir.
type GdataRecorder struct {
	m *gdata.Manager
}

// Open initializes on-disk storage for the named app.
func Open(appName string) (*GdataRecorder, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open progression storage: %w", err)
	}
	return &GdataRecorder{m: m}, nil
}

// Load returns the stored profile, or a zero profile when none exists yet.
func (r *GdataRecorder) Load() (Profile, error) {
	var p Profile
	data, err := r.m.LoadItem(profileItem)
	if err != nil {
		return p, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// RecordMatch folds a result into the profile and writes it back.
func (r *GdataRecorder) RecordMatch(result MatchResult) error {
	p, err := r.Load()
	if err != nil {
		log.Printf("[progression] starting fresh profile: %v", err)
		p = Profile{}
	}

	p.MatchesPlayed++
	if result.Won {
		p.MatchesWon++
	}
	p.RoundsWon += result.RoundsWon
	p.RoundsLost += result.RoundsLost
	p.DamageDealt += result.DamageDealt
	p.DamageTaken += result.DamageTaken
	p.Catches += result.Catches
	p.Throws += result.Throws

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := r.m.SaveItem(profileItem, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
