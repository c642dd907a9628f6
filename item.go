package blogwatch

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Item is one unit of content extracted from the watched page.
//
// Title is the identity of an item: two items with the same title are the
// same item for change detection, whatever their other fields say.
type Item struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Excerpt string `json:"content"`
	Link    string `json:"link"`

	// ObservedAt is when the item was extracted, not when it was published.
	ObservedAt time.Time `json:"time"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	return nil
}

// Titles returns the set of titles in items.
func Titles(items []*Item) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item.Title] = struct{}{}
	}
	return set
}

// ExclusionSet is a list of literal boilerplate phrases. Titles containing
// a phrase are dropped; excerpts have the phrase cut out.
type ExclusionSet []string

// ParseExclusionSet splits a pipe-delimited phrase list. Empty entries are skipped.
func ParseExclusionSet(s string) ExclusionSet {
	var set ExclusionSet
	for _, phrase := range strings.Split(s, "|") {
		if phrase == "" {
			continue
		}
		set = append(set, phrase)
	}
	return set
}

// Match reports whether s contains any phrase of the set.
func (x ExclusionSet) Match(s string) bool {
	for _, phrase := range x {
		if phrase != "" && strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// Source identifies the watched page in rendered digests.
type Source struct {
	Name string
	URL  string
}

// SnapshotStore persists the item list of the most recent run.
type SnapshotStore interface {
	// Load returns the items saved by the previous run.
	// Returns ENOTFOUND if nothing was saved yet and EINVALID if the stored
	// snapshot cannot be decoded.
	Load(ctx context.Context) ([]*Item, error)

	// Save replaces the stored snapshot with items.
	Save(ctx context.Context, items []*Item) error
}

// observedAtLayouts are accepted when decoding ObservedAt. Besides RFC 3339,
// legacy cache files carry naive ISO timestamps.
var observedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON decodes an item, tolerating timestamps without a zone.
// An unreadable timestamp leaves ObservedAt zero rather than failing.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	aux := struct {
		*plain
		ObservedAt string `json:"time"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	i.ObservedAt = time.Time{}
	for _, layout := range observedAtLayouts {
		if t, err := time.ParseInLocation(layout, aux.ObservedAt, time.Local); err == nil {
			i.ObservedAt = t
			break
		}
	}
	return nil
}
