package bootstrap

import (
	"log"

	"gastroassist-be/internal/config"
	"gastroassist-be/internal/controller"
	"gastroassist-be/internal/pkg/logger"
	"gastroassist-be/internal/service"
	"gastroassist-be/pkg/knowledge"
	"gastroassist-be/pkg/knowledge/extract"
	"gastroassist-be/pkg/knowledge/kb"
	"gastroassist-be/pkg/knowledge/search/duckduckgo"
	"gastroassist-be/pkg/knowledge/search/tavily"
	"gastroassist-be/pkg/llm/factory"
	"gastroassist-be/pkg/output"
	"gastroassist-be/pkg/query"
	"gastroassist-be/pkg/reasoning"
	"gastroassist-be/pkg/summarize"
)

type Container struct {
	// Controllers
	QueryController         controller.IQueryController
	KnowledgeBaseController controller.IKnowledgeBaseController

	// Exposed for shutdown and debug tooling
	Logger       logger.ILogger
	QueryService service.IQueryService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Providers
	// Missing credentials are fatal here, not downstream
	llmProvider, err := factory.NewLLMProvider(
		cfg.LLM.Service,
		cfg.LLM.APIKey(),
		cfg.LLM.Model(),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.LLM.Service, cfg.LLM.Model())

	tavilyClient, err := tavily.NewClient(cfg.Keys.Tavily, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Tavily client: %v", err)
	}
	ddgClient := duckduckgo.NewClient(sysLogger)

	// 3. Pipeline Components
	processor := query.NewProcessor()
	agent := reasoning.NewAgent()
	dynamicSearch := knowledge.NewDynamicSearch(tavilyClient, ddgClient, sysLogger)
	extractor := extract.NewExtractor(tavilyClient, sysLogger)
	summarizer := summarize.NewSummarizer(llmProvider, sysLogger)
	router := knowledge.NewRouter(dynamicSearch, extractor, summarizer, sysLogger)

	knowledgeBase := kb.NewKnowledgeBase()

	// 4. Output Generation
	answerGenerator := output.NewAnswerGenerator(sysLogger)
	sourceCompiler := output.NewSourceCompiler()
	qualityAssurance := output.NewQualityAssurance()

	// 5. Services
	queryService := service.NewQueryService(
		processor,
		agent,
		router,
		answerGenerator,
		sourceCompiler,
		qualityAssurance,
		sysLogger,
	)

	// 6. Controllers
	queryController := controller.NewQueryController(queryService)
	kbController := controller.NewKnowledgeBaseController(knowledgeBase)

	return &Container{
		QueryController:         queryController,
		KnowledgeBaseController: kbController,
		Logger:                  sysLogger,
		QueryService:            queryService,
	}
}
