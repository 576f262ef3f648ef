package models

import (
	"errors"
	"fmt"
)

// ContentType is the closed set of copy formats the generator produces.
type ContentType string

const (
	BlogPost           ContentType = "Blog Post"
	SocialMediaPost    ContentType = "Social Media Post"
	AdCopy             ContentType = "Ad Copy"
	EmailNewsletter    ContentType = "Email Newsletter"
	ProductDescription ContentType = "Product Description"
	LandingPageCopy    ContentType = "Landing Page Copy"
	VideoScript        ContentType = "Video Script"
	SalesPage          ContentType = "Sales Page"
)

// Tone is the closed set of writing tones the generator supports.
type Tone string

const (
	Professional   Tone = "Professional"
	Conversational Tone = "Conversational"
	Humorous       Tone = "Humorous"
	Inspirational  Tone = "Inspirational"
	Educational    Tone = "Educational"
	Casual         Tone = "Casual"
)

var contentTypes = map[ContentType]bool{
	BlogPost:           true,
	SocialMediaPost:    true,
	AdCopy:             true,
	EmailNewsletter:    true,
	ProductDescription: true,
	LandingPageCopy:    true,
	VideoScript:        true,
	SalesPage:          true,
}

var tones = map[Tone]bool{
	Professional:   true,
	Conversational: true,
	Humorous:       true,
	Inspirational:  true,
	Educational:    true,
	Casual:         true,
}

func (c ContentType) Valid() bool { return contentTypes[c] }

func (t Tone) Valid() bool { return tones[t] }

// ErrValidation marks requests rejected before any external call is made.
var ErrValidation = errors.New("invalid generation request")

// GenerationRequest describes the copy a user wants produced.
type GenerationRequest struct {
	Topic               string      `json:"topic"`
	ContentType         ContentType `json:"contentType"`
	Audience            string      `json:"audience"`
	Tone                Tone        `json:"tone"`
	WordCount           string      `json:"wordCount,omitempty"`
	SpecialRequirements string      `json:"specialRequirements,omitempty"`
}

// Validate enforces required fields and enum membership at the request
// boundary, so nothing downstream ever sees a free-form type or tone.
func (r GenerationRequest) Validate() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if r.Audience == "" {
		return fmt.Errorf("%w: audience is required", ErrValidation)
	}
	if !r.ContentType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", ErrValidation, r.ContentType)
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("%w: unknown tone %q", ErrValidation, r.Tone)
	}
	return nil
}
