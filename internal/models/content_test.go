package models_test

import (
	"testing"

	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerationRequest_Validate(t *testing.T) {
	valid := models.GenerationRequest{
		Topic:       "sustainable packaging",
		ContentType: models.ProductDescription,
		Audience:    "eco-conscious shoppers",
		Tone:        models.Professional,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*models.GenerationRequest)
	}{
		{"missing topic", func(r *models.GenerationRequest) { r.Topic = "" }},
		{"missing audience", func(r *models.GenerationRequest) { r.Audience = "" }},
		{"unknown content type", func(r *models.GenerationRequest) { r.ContentType = "Haiku" }},
		{"unknown tone", func(r *models.GenerationRequest) { r.Tone = "Sarcastic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), models.ErrValidation)
		})
	}
}

func TestEnums(t *testing.T) {
	assert.True(t, models.BlogPost.Valid())
	assert.True(t, models.SalesPage.Valid())
	assert.False(t, models.ContentType("Tweet Storm").Valid())

	assert.True(t, models.Casual.Valid())
	assert.False(t, models.Tone("Angry").Valid())
}
