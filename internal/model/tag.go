package model

import (
	"encoding/json"
	"fmt"
)

// TagKind enumerates the closed tag vocabulary. Keeping the set small and
// fixed is deliberate; new kinds are added here, not by callers.
type TagKind string

const (
	// Medium based
	TagArticle    TagKind = "article"
	TagBook       TagKind = "book"
	TagMovie      TagKind = "movie"
	TagMusic      TagKind = "music"
	TagSeries     TagKind = "series"
	TagPodcast    TagKind = "podcast"
	TagRecipe     TagKind = "recipe"
	TagRestaurant TagKind = "restaurant"
	TagAdventure  TagKind = "adventure"
	TagVideoGame  TagKind = "video_game"
	TagBoardGame  TagKind = "board_game"

	// Genre based
	TagCareer        TagKind = "career"
	TagEntertainment TagKind = "entertainment"
	TagProductivity  TagKind = "productivity"

	// Topic based
	TagArtificialIntelligence TagKind = "artificial_intelligence"
	TagEffectiveAltruism      TagKind = "effective_altruism"
	TagSocialJustice          TagKind = "social_justice"
	TagEnvironmental          TagKind = "environmental"

	// Meta based, these carry a string payload
	TagRecommendedBy TagKind = "recommended_by"
	TagRemindsMeOf   TagKind = "reminds_me_of"
	TagOrigin        TagKind = "origin"
)

var fixedTagKinds = map[TagKind]bool{
	TagArticle:                true,
	TagBook:                   true,
	TagMovie:                  true,
	TagMusic:                  true,
	TagSeries:                 true,
	TagPodcast:                true,
	TagRecipe:                 true,
	TagRestaurant:             true,
	TagAdventure:              true,
	TagVideoGame:              true,
	TagBoardGame:              true,
	TagCareer:                 true,
	TagEntertainment:          true,
	TagProductivity:           true,
	TagArtificialIntelligence: true,
	TagEffectiveAltruism:      true,
	TagSocialJustice:          true,
	TagEnvironmental:          true,
}

var parameterizedTagKinds = map[TagKind]bool{
	TagRecommendedBy: true,
	TagRemindsMeOf:   true,
	TagOrigin:        true,
}

// Tag is a value from the closed vocabulary above. Fixed kinds carry no
// payload; parameterized kinds require one. Two tags are equal when both
// kind and value match, so recommended_by:"ana" and recommended_by:"sam"
// may coexist on one note.
type Tag struct {
	Kind  TagKind `json:"kind"`
	Value string  `json:"value,omitempty"`
}

// NewTag builds a fixed-kind tag.
func NewTag(kind TagKind) Tag { return Tag{Kind: kind} }

// NewParamTag builds a parameterized tag.
func NewParamTag(kind TagKind, value string) Tag { return Tag{Kind: kind, Value: value} }

// Validate checks kind membership and payload rules.
func (t Tag) Validate() error {
	switch {
	case fixedTagKinds[t.Kind]:
		if t.Value != "" {
			return fmt.Errorf("%w: tag kind %q does not take a value", ErrValidation, t.Kind)
		}
		return nil
	case parameterizedTagKinds[t.Kind]:
		if t.Value == "" {
			return fmt.Errorf("%w: tag kind %q requires a value", ErrValidation, t.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown tag kind %q", ErrValidation, t.Kind)
	}
}

// EncodeTag serializes a tag to its self-describing stored form. The JSON
// discriminant keeps the stored rows readable and lets new kinds arrive
// without a schema change.
func EncodeTag(t Tag) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("serializing tag %q: %w", t.Kind, err)
	}
	return string(b), nil
}

// DecodeTag parses a stored tag string back into a Tag.
func DecodeTag(s string) (Tag, error) {
	var t Tag
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return Tag{}, fmt.Errorf("%w: deserializing tag %q: %v", ErrValidation, s, err)
	}
	if err := t.Validate(); err != nil {
		return Tag{}, err
	}
	return t, nil
}

// EncodeTags serializes a tag set for storage, rejecting duplicates.
func EncodeTags(tags []Tag) ([]string, error) {
	seen := make(map[Tag]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			return nil, fmt.Errorf("%w: duplicate tag %v", ErrValidation, t)
		}
		seen[t] = true
		s, err := EncodeTag(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeTags parses a stored tag list. A parse failure or an intra-note
// duplicate aborts the whole read.
func DecodeTags(raw []string) ([]Tag, error) {
	seen := make(map[Tag]bool, len(raw))
	out := make([]Tag, 0, len(raw))
	for _, s := range raw {
		t, err := DecodeTag(s)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			return nil, fmt.Errorf("%w: duplicate tag %v", ErrValidation, t)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// ValidateTagSet checks every tag and set uniqueness without serializing.
func ValidateTagSet(tags []Tag) error {
	seen := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate tag %v", ErrValidation, t)
		}
		seen[t] = true
	}
	return nil
}
