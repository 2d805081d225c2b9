package handlers

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/changlade/intelligent-dashboard-demo/internal/connections"
	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/genie"
	"github.com/changlade/intelligent-dashboard-demo/internal/middleware"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/dashboard"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/recommend"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/resultcache"
	"github.com/changlade/intelligent-dashboard-demo/pkg/ratelimit"
)

// Deps carries the services the router wires into handlers.
type Deps struct {
	Genie     *genie.Service
	Cache     *resultcache.Service
	Workflow  *assistant.Workflow
	Log       *assistant.MessageLog
	Hub       *connections.Hub
	Dashboard *dashboard.Service
	Recommend *recommend.Service
}

// NewRouter builds the full route table.
func NewRouter(deps Deps) *mux.Router {
	genieHandler := NewGenieHandler(deps.Genie, deps.Cache)
	chatHandler := NewChatHandler(deps.Workflow, deps.Log)
	transcriptHandler := NewTranscriptHandler(deps.Hub, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	recommendHandler := NewRecommendHandler(deps.Recommend)
	healthHandler := NewHealthHandler(deps.Cache)

	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/health/cache", healthHandler.HandleCacheHealth).Methods("GET")
	router.HandleFunc("/ws/transcript", transcriptHandler.HandleWebSocket)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.RateLimit(ratelimit.NewLimiter(time.Minute, 120)))

	api.HandleFunc("/genie/config", genieHandler.HandleConfig).Methods("GET")
	api.HandleFunc("/genie/conversations/start", genieHandler.HandleStartConversation).Methods("POST")
	api.HandleFunc("/genie/conversations/{conversationID}/messages", genieHandler.HandleSendMessage).Methods("POST")
	api.HandleFunc("/genie/conversations/{conversationID}/messages/{messageID}", genieHandler.HandleGetMessage).Methods("GET")
	api.HandleFunc("/genie/conversations/{conversationID}/messages/{messageID}/query-result/{attachmentID}", genieHandler.HandleGetQueryResult).Methods("GET")

	api.HandleFunc("/chat/messages", chatHandler.HandleSubmit).Methods("POST")
	api.HandleFunc("/chat/transcript", chatHandler.HandleTranscript).Methods("GET")
	api.HandleFunc("/chat/reset", chatHandler.HandleReset).Methods("POST")

	api.HandleFunc("/dashboard/config", dashboardHandler.HandleConfig).Methods("GET")
	api.HandleFunc("/recommendations", recommendHandler.HandleGenerate).Methods("POST")

	return router
}
