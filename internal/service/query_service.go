package service

import (
	"context"
	"fmt"

	"gastroassist-be/internal/dto"
	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/output"
	"gastroassist-be/pkg/query"
	"gastroassist-be/pkg/reasoning"
)

const pipelineApology = "I'm sorry, but an unexpected error occurred while processing your query. Please try again later."

// IQueryService defines the query pipeline service interface
type IQueryService interface {
	Process(ctx context.Context, request *dto.QueryRequest) *dto.QueryResponse
	Direct(ctx context.Context, request *dto.QueryRequest) *dto.DirectQueryResponse
}

// queryService coordinates the full question-answering pipeline
type queryService struct {
	processor *query.Processor
	agent     *reasoning.Agent
	router    *knowledge.Router

	// Output generation components
	answerGenerator  *output.AnswerGenerator
	sourceCompiler   *output.SourceCompiler
	qualityAssurance *output.QualityAssurance

	logger logger.ILogger
}

// NewQueryService creates a query service over pre-built pipeline components
func NewQueryService(
	processor *query.Processor,
	agent *reasoning.Agent,
	router *knowledge.Router,
	answerGenerator *output.AnswerGenerator,
	sourceCompiler *output.SourceCompiler,
	qualityAssurance *output.QualityAssurance,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		processor:        processor,
		agent:            agent,
		router:           router,
		answerGenerator:  answerGenerator,
		sourceCompiler:   sourceCompiler,
		qualityAssurance: qualityAssurance,
		logger:           log,
	}
}

// Process runs the aggregated pipeline. Any panic below this boundary
// degrades to an apology answer with zero sources and zero confidence.
func (s *queryService) Process(ctx context.Context, request *dto.QueryRequest) (response *dto.QueryResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("query_service", "Pipeline panicked", map[string]interface{}{
				"query": request.Text,
				"panic": fmt.Sprint(rec),
			})
			response = &dto.QueryResponse{
				Answer:          pipelineApology,
				Sources:         []dto.SourceDTO{},
				ConfidenceScore: 0,
			}
		}
	}()

	results := s.retrieve(ctx, request.Text)

	answer := s.answerGenerator.Generate(results, request.Text)
	sources := s.sourceCompiler.Compile(results)
	quality := s.qualityAssurance.Check(answer, sources)

	s.logger.Info("query_service", "Query processed", map[string]interface{}{
		"query":      request.Text,
		"user_id":    request.UserID,
		"needs":      len(results),
		"sources":    quality.SourceCount,
		"confidence": quality.ConfidenceScore,
	})

	return &dto.QueryResponse{
		Answer:          answer,
		Sources:         toSourceDTOs(sources),
		ConfidenceScore: quality.ConfidenceScore,
	}
}

// Direct returns the raw per-need result mapping, bypassing aggregation.
func (s *queryService) Direct(ctx context.Context, request *dto.QueryRequest) (response *dto.DirectQueryResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("query_service", "Direct pipeline panicked", map[string]interface{}{
				"query": request.Text,
				"panic": fmt.Sprint(rec),
			})
			response = &dto.DirectQueryResponse{
				Query:  request.Text,
				Result: map[string]knowledge.NeedResult{},
			}
		}
	}()

	return &dto.DirectQueryResponse{
		Query:  request.Text,
		Result: s.retrieve(ctx, request.Text),
	}
}

func (s *queryService) retrieve(ctx context.Context, text string) map[string]knowledge.NeedResult {
	processed := s.processor.Process(text)
	needs := s.agent.Analyze(processed)
	return s.router.Retrieve(ctx, needs)
}

func toSourceDTOs(sources []output.Source) []dto.SourceDTO {
	dtos := make([]dto.SourceDTO, 0, len(sources))
	for _, s := range sources {
		dtos = append(dtos, dto.SourceDTO{
			Title:      s.Title,
			URL:        s.URL,
			Snippet:    s.Snippet,
			Confidence: s.Confidence,
			Type:       s.Type,
		})
	}
	return dtos
}
