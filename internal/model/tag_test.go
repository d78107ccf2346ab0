package model

import (
	"errors"
	"testing"
)

func allTags() []Tag {
	fixed := []TagKind{
		TagArticle, TagBook, TagMovie, TagMusic, TagSeries, TagPodcast,
		TagRecipe, TagRestaurant, TagAdventure, TagVideoGame, TagBoardGame,
		TagCareer, TagEntertainment, TagProductivity,
		TagArtificialIntelligence, TagEffectiveAltruism, TagSocialJustice, TagEnvironmental,
	}
	out := make([]Tag, 0, len(fixed)+3)
	for _, k := range fixed {
		out = append(out, NewTag(k))
	}
	out = append(out,
		NewParamTag(TagRecommendedBy, "x"),
		NewParamTag(TagRemindsMeOf, "that one summer"),
		NewParamTag(TagOrigin, "book club"),
	)
	return out
}

func TestTagRoundTrip_EveryVariant(t *testing.T) {
	for _, tag := range allTags() {
		s, err := EncodeTag(tag)
		if err != nil {
			t.Fatalf("encode %v: %v", tag, err)
		}
		got, err := DecodeTag(s)
		if err != nil {
			t.Fatalf("decode %q: %v", s, err)
		}
		if got != tag {
			t.Fatalf("round trip changed tag: %v -> %q -> %v", tag, s, got)
		}
	}
}

func TestEncodeTags_DistinctSetRoundTrips(t *testing.T) {
	tags := allTags()
	raw, err := EncodeTags(tags)
	if err != nil {
		t.Fatalf("encode set: %v", err)
	}
	got, err := DecodeTags(raw)
	if err != nil {
		t.Fatalf("decode set: %v", err)
	}
	if len(got) != len(tags) {
		t.Fatalf("set round trip: got %d tags, want %d", len(got), len(tags))
	}
}

func TestTagValidate(t *testing.T) {
	cases := []struct {
		name string
		tag  Tag
		ok   bool
	}{
		{"fixed kind", NewTag(TagBook), true},
		{"parameterized with value", NewParamTag(TagRecommendedBy, "sam"), true},
		{"unknown kind", Tag{Kind: "sandwich"}, false},
		{"fixed kind with value", Tag{Kind: TagBook, Value: "x"}, false},
		{"parameterized without value", Tag{Kind: TagRecommendedBy}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tag.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected rejection")
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("wrong error kind: %v", err)
				}
			}
		})
	}
}

func TestDecodeTags_Failures(t *testing.T) {
	if _, err := DecodeTags([]string{`{"kind":"book"}`, `{"kind":"book"}`}); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate tags: err=%v, want ErrValidation", err)
	}
	if _, err := DecodeTags([]string{`not json`}); !errors.Is(err, ErrValidation) {
		t.Fatalf("garbage tag: err=%v, want ErrValidation", err)
	}
	if _, err := DecodeTags([]string{`{"kind":"sandwich"}`}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown kind: err=%v, want ErrValidation", err)
	}
}

// Same kind with different payloads is two distinct tags, not a duplicate.
func TestParameterizedTags_DistinctByValue(t *testing.T) {
	tags := []Tag{
		NewParamTag(TagRecommendedBy, "ana"),
		NewParamTag(TagRecommendedBy, "sam"),
	}
	if err := ValidateTagSet(tags); err != nil {
		t.Fatalf("distinct payloads rejected: %v", err)
	}
}
