package recommendation

import (
	"context"

	"gorm.io/gorm"

	"github.com/saulo-duarte/gradetrack-lambda/internal/aggregate"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
)

type RecommendationContainer struct {
	Handler *Handler
}

func NewRecommendationContainer(db *gorm.DB, aggregator aggregate.Aggregator) *RecommendationContainer {
	provider, err := NewGeminiProvider(context.Background(), config.App.GeminiModel)
	if err != nil {
		config.Logger.WithError(err).Warn("Gemini provider unavailable, recommendations disabled")
		provider = nil
	}

	service := NewService(NewRepository(db), aggregator, provider)
	return &RecommendationContainer{
		Handler: NewHandler(service),
	}
}
