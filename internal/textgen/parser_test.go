package textgen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParseTopicIdeas(t *testing.T) {
	reply := `Here are some ideas:

1. Title: Secrets of Deep Sea Creatures
   Description: A tour of the ocean's strangest animals.
   Keywords: ocean, deep sea, animals

2. Title: How Submarines Work
   Description: The engineering behind staying underwater.
   Keywords: submarines, engineering`

	ideas, err := ParseTopicIdeas(reply)
	if err != nil {
		t.Fatalf("parse topic ideas: %v", err)
	}

	if len(ideas) != 2 {
		t.Fatalf("expected 2 ideas, got %d", len(ideas))
	}
	if ideas[0].Title != "Secrets of Deep Sea Creatures" {
		t.Fatalf("unexpected first title %q", ideas[0].Title)
	}
	if ideas[0].Description != "A tour of the ocean's strangest animals." {
		t.Fatalf("unexpected description %q", ideas[0].Description)
	}
	if len(ideas[0].Keywords) != 3 || ideas[0].Keywords[1] != "deep sea" {
		t.Fatalf("unexpected keywords %v", ideas[0].Keywords)
	}
	if len(ideas[1].Keywords) != 2 {
		t.Fatalf("unexpected keywords %v", ideas[1].Keywords)
	}
}

func TestParseTopicIdeasNoMarkersIsParseError(t *testing.T) {
	_, err := ParseTopicIdeas("I'm sorry, I can't help with that.")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseMetadata(t *testing.T) {
	reply := `Description: Everything about container orchestration in two sentences. Learn the basics fast.
Tags: kubernetes, devops, containers
Category: Science & Technology
Timestamps:
00:00 Intro
02:15 Core concepts
07:40 Wrap up`

	meta := ParseMetadata(reply)

	if meta.Description == "" {
		t.Fatal("expected description")
	}
	if len(meta.Tags) != 3 || meta.Tags[0] != "kubernetes" {
		t.Fatalf("unexpected tags %v", meta.Tags)
	}
	if meta.Category != "Science & Technology" {
		t.Fatalf("unexpected category %q", meta.Category)
	}
	if meta.Timestamps != "00:00 Intro\n02:15 Core concepts\n07:40 Wrap up" {
		t.Fatalf("unexpected timestamps %q", meta.Timestamps)
	}
}

func TestParseMetadataDefaults(t *testing.T) {
	meta := ParseMetadata("the model rambled with no structure at all")

	if meta.Description != "" {
		t.Fatalf("expected empty description, got %q", meta.Description)
	}
	if meta.Tags == nil || len(meta.Tags) != 0 {
		t.Fatalf("expected empty tag slice, got %v", meta.Tags)
	}
	if meta.Category != "Education" {
		t.Fatalf("expected Education default, got %q", meta.Category)
	}
}

func TestTokenBudget(t *testing.T) {
	cases := []struct {
		length string
		budget int
	}{
		{length: LengthShort, budget: 1000},
		{length: LengthMedium, budget: 1200},
		{length: LengthLong, budget: 2000},
		{length: "unknown", budget: 1200},
	}

	for _, tc := range cases {
		if got := TokenBudget(WordsFor(tc.length)); got != tc.budget {
			t.Errorf("TokenBudget(WordsFor(%q)) = %d, want %d", tc.length, got, tc.budget)
		}
	}
}

func TestMockGeneratorEmbedsTopic(t *testing.T) {
	script, err := MockGenerator{}.GenerateScript(context.Background(), ScriptRequest{Topic: "cats", Style: StyleEducational, Length: LengthShort})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	if !strings.Contains(script, "cats") {
		t.Fatal("expected script to contain the topic")
	}
}
